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
package apihttp

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/bbva/hashtree/metrics"
)

// namespace is the leading part of all published metrics.
const namespace = "hashtree"

// subsystem associated with metrics for API HTTP
const subSystem = "api_http"

var (
	HealthCheckRequest = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subSystem,
			Name:      "health_check_requests",
			Help:      "Number of current HTTP HealtCheck requests.",
		},
	)
	AddLeafRequest = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subSystem,
			Name:      "add_leaf_requests",
			Help:      "Number of current HTTP AddLeaf requests.",
		},
	)
	RootRequest = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subSystem,
			Name:      "root_requests",
			Help:      "Number of current HTTP Root requests.",
		},
	)
	TreeRequest = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subSystem,
			Name:      "tree_requests",
			Help:      "Number of current HTTP Tree requests.",
		},
	)
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subSystem,
			Name:      "requests_total",
			Help:      "Number of HTTP requests served by route and status.",
		},
		[]string{"path", "status"},
	)
)

func RegisterMetrics(registry metrics.Registry) {
	if registry != nil {
		registry.MustRegister(
			HealthCheckRequest,
			AddLeafRequest,
			RootRequest,
			TreeRequest,
			RequestsTotal,
		)
	}
}
