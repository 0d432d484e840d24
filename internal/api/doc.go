// SoberShot - Drink Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sobershot

/*
Package api provides the HTTP surface of SoberShot.

Routes:

	GET  /              liveness banner
	POST /add-drink     insert a drink into the catalog if its name is new
	GET  /search        case-insensitive substring search on name or category
	POST /recommend     top-N similar drinks for a dataset row
	GET  /health/live   process liveness
	GET  /health/ready  catalog reachability and dataset size
	GET  /metrics       Prometheus exposition
	GET  /swagger/*     Swagger UI; /swagger/doc.json is the OpenAPI document

Error bodies always have the shape {"detail": "..."}. Status codes:

  - 400: a drink with the same name already exists
  - 404: search matched nothing
  - 413: request body larger than security.max_body_bytes
  - 422: malformed JSON, failed validation, top_n < 1, missing query
  - 429: per-IP rate limit exceeded
  - 500: recommendation failure (including an out-of-range drink_index)
    or an unexpected catalog error
  - 503: readiness probe with an unreachable catalog

Middleware (outermost first): request ID and logging context, real IP,
panic recovery, security headers, CORS, gzip for JSON, per-IP rate limit,
Prometheus metrics and access log.

Handlers are safe for concurrent use. They hold no mutable state of their
own; the catalog store and the recommendation engine provide their own
synchronization.
*/
package api
