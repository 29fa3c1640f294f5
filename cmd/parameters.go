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
	"net/url"
	"strings"

	"github.com/pkg/errors"

	"github.com/bbva/hashtree/render"
)

var (
	errMalformedURL     = errors.New("malformed URL")
	errMissingURLHost   = errors.New("missing URL Host")
	errMissingURLPort   = errors.New("missing URL Port")
	errUnexpectedScheme = errors.New("unexpected URL Scheme")
	errUnknownFormat    = errors.New("unknown output format")
)

// urlParseNoSchemaRequired function checks that given string parameters are
// valid IPs for binding services: hostname + port. No schema is required.
func urlParseNoSchemaRequired(endpoints ...string) error {
	for _, endpoint := range endpoints {

		if strings.Contains(endpoint, "://") {
			return errors.Wrapf(errUnexpectedScheme, "in %s", endpoint)
		}

		// Add fake scheme to get an expected result from url.Parse
		url, err := url.Parse("http://" + endpoint)

		if err != nil {
			return errors.Wrapf(errMalformedURL, "in %s", endpoint)
		}

		if url.Hostname() == "" {
			return errors.Wrapf(errMissingURLHost, "in %s", endpoint)
		}

		if url.Port() == "" {
			return errors.Wrapf(errMissingURLPort, "in %s", endpoint)
		}
	}
	return nil
}

// formatParse checks that the output format is one render understands.
func formatParse(format string) error {
	for _, f := range render.Formats {
		if f == format {
			return nil
		}
	}
	return errors.Wrapf(errUnknownFormat, "%q, expected one of %s", format, strings.Join(render.Formats, ", "))
}
