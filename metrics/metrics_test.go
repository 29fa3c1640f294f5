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
package metrics

import (
	"io/ioutil"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestServerExposesRegisteredCollectors(t *testing.T) {
	srv := NewServer("127.0.0.1:0")

	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "hashtree",
		Subsystem: "test",
		Name:      "things_total",
		Help:      "Number of things.",
	})
	srv.MustRegister(counter)
	counter.Add(3)

	rec := httptest.NewRecorder()
	srv.server.Handler.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := ioutil.ReadAll(rec.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "hashtree_test_things_total 3")
	require.Contains(t, string(body), "go_goroutines")
}
