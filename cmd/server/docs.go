// SoberShot - Drink Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sobershot

package main

// General API information for swag. The generated document lives in the
// docs package and is served at /swagger/index.html.
//
// @title SoberShot API
// @version 1.0
// @description Drink catalog search and content-based drink recommendations.
// @description
// @description ## Error Responses
// @description
// @description All error responses carry a single human-readable field:
// @description ```json
// @description {"detail": "No drinks found matching your query"}
// @description ```
// @description
// @description ## Rate Limiting
// @description
// @description Default rate limit: 100 requests per minute per IP address.
// @description Health probes are not rate limited.
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/sobershot/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @BasePath /
// @schemes http https
//
// @tag.name Drinks
// @tag.description Drink catalog endpoints
//
// @tag.name Recommendations
// @tag.description Similarity recommendations over the loaded dataset
//
// @tag.name Core
// @tag.description Health probes
