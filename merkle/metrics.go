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
package merkle

import "github.com/prometheus/client_golang/prometheus"

const namespace = "hashtree"
const subSystem = "merkle"

var (
	AppendTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subSystem,
			Name:      "append_total",
			Help:      "Number of leaves appended to builders.",
		},
	)
	BuildTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subSystem,
			Name:      "build_total",
			Help:      "Number of tree builds by strategy.",
		},
		[]string{"strategy"},
	)
	BuildErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subSystem,
			Name:      "build_errors_total",
			Help:      "Number of tree builds that failed.",
		},
	)
	BuildDurationSeconds = prometheus.NewSummary(
		prometheus.SummaryOpts{
			Namespace: namespace,
			Subsystem: subSystem,
			Name:      "build_duration_seconds",
			Help:      "Duration of the tree builds.",
		},
	)
	DigestsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subSystem,
			Name:      "digests_total",
			Help:      "Number of digests computed while building trees.",
		},
	)
	ReusedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subSystem,
			Name:      "reused_total",
			Help:      "Number of nodes or digests reused from frozen subtrees or caches.",
		},
	)
)

// Collectors returns the metrics of this package, to be registered by
// whoever exposes them.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		AppendTotal,
		BuildTotal,
		BuildErrorsTotal,
		BuildDurationSeconds,
		DigestsTotal,
		ReusedTotal,
	}
}
