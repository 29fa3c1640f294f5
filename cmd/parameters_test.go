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
package cmd

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestUrlParseNoSchemaRequired(t *testing.T) {

	testCases := []struct {
		endpoints     []string
		expectedError error
	}{
		{
			endpoints:     []string{"localhost:8080", "127.0.0.1:8080", "0.0.0.0:0"},
			expectedError: nil,
		},
		{
			endpoints:     []string{"http://localhost:8080", "https://127.0.0.1:8800"},
			expectedError: errUnexpectedScheme,
		},
		{
			endpoints:     []string{"", ":8080"},
			expectedError: errMissingURLHost,
		},
		{
			endpoints:     []string{"localhost", "127.0.0.1"},
			expectedError: errMissingURLPort,
		},
		{
			endpoints:     []string{"localhost:80%zz"},
			expectedError: errMalformedURL,
		},
	}

	for i, c := range testCases {
		for _, e := range c.endpoints {
			err := urlParseNoSchemaRequired(e)
			require.Equalf(t, c.expectedError, errors.Cause(err), "Errors do not match for %q in test case %d", e, i)
		}
	}
}

func TestFormatParse(t *testing.T) {
	require.NoError(t, formatParse("text"))
	require.NoError(t, formatParse("msgpack"))
	require.Equal(t, errUnknownFormat, errors.Cause(formatParse("yaml")))
}
