/*
   Copyright 2018-2019 Banco Bilbao Vizcaya Argentaria, S.A.

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
package util

import (
	"bufio"
	"bytes"
	"io"
)

// ScanValues calls fn with every non blank line read from r, without
// surrounding whitespace. Lines may be of any length. It stops at the first
// error returned by fn.
func ScanValues(r io.Reader, fn func(value []byte) error) error {
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil && err != io.EOF {
			return err
		}
		if value := bytes.TrimSpace(line); len(value) > 0 {
			if ferr := fn(value); ferr != nil {
				return ferr
			}
		}
		if err == io.EOF {
			return nil
		}
	}
}

// ReadValues returns the non blank lines read from r, without surrounding
// whitespace.
func ReadValues(r io.Reader) ([][]byte, error) {
	values := make([][]byte, 0)
	err := ScanValues(r, func(value []byte) error {
		v := make([]byte, len(value))
		copy(v, value)
		values = append(values, v)
		return nil
	})
	return values, err
}
