// Package models defines domain entities and persistence interfaces for the cratedig scraper.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): Lightweight structs representing external service data
//   - [Playlist] : Playlist metadata returned by a catalog search
//   - [PlaylistRecord] : One matched playlist row in the result table
//   - [ResultTable] : The ordered row collection persisted to the output workbook
//
// 2. Persistent Entities: Database-backed models with full lifecycle management
//   - [Run] : One scrape invocation with query/match counts and status
//
// Persistent entities implement the Model interface providing ID generation, timestamps, validation, and soft delete support.
// The Repository[T] interface defines standard CRUD operations for database access.
package models
