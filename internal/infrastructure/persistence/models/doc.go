// Package models contains the GORM persistence models and their
// conversions to and from domain entities. Domain types stay free of
// storage tags; every repository maps through this package.
package models
