/*
Copyright 2024 ciderkit

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package driver

import (
	"database/sql"

	// register the sqlite3 driver with database/sql.
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteDriver is a driver of SQLite.
type SQLiteDriver struct{}

// Translator returns a translator of SQL placeholders.
func (d SQLiteDriver) Translator() Translator {
	return TranslateFunc(func(matched string) string { return "?" })
}

// Open opens a database connection with the given datasource.
func (d SQLiteDriver) Open(datasource string) (*sql.DB, error) {
	return sql.Open(d.String(), datasource)
}

func (d SQLiteDriver) String() string {
	return "sqlite3"
}

func init() {
	Register("sqlite3", &SQLiteDriver{})
}
