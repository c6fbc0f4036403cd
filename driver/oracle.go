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
	"strconv"
)

// OracleDriver is a driver of Oracle.
// No database/sql driver is bundled; Open expects one registered under
// the name "oracle".
type OracleDriver struct{}

// Translator returns a translator of SQL placeholders.
// Each call returns a fresh counter.
func (o OracleDriver) Translator() Translator {
	var i int
	return TranslateFunc(func(matched string) string {
		i++
		return ":" + strconv.Itoa(i)
	})
}

// Open opens a database connection with the given datasource.
func (o OracleDriver) Open(datasource string) (*sql.DB, error) {
	return sql.Open(o.String(), datasource)
}

func (o OracleDriver) String() string {
	return "oracle"
}

func init() {
	Register("oracle", &OracleDriver{})
}
