// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

/*
Package api exposes the ranked-feed HTTP surface on a chi router.

Endpoints are grouped under /api/v1:

  - GET  /feed                    ranked clip feed (mode, window, topic, paging)
  - GET  /topics/today            curated topic spotlight and secondary picks
  - GET  /recommendations/clips   content recommendations for the viewer
  - GET  /recommendations/creators creator recommendations for the viewer
  - POST /listens                 listen-event ingestion (buffered, async)
  - GET  /health/live, /health/ready  liveness and snapshot readiness

Plus /metrics (Prometheus) and /swagger/* (OpenAPI UI) at the root.

All read endpoints serve from the in-memory snapshot held by store.Holder;
no request touches the database synchronously. Listen events are appended
to the badger-backed listen log and drained to the store in the background.

Viewer identity is optional: a bearer token (HS256, subject = viewer ID)
resolves the viewer's stored capabilities; absent or invalid tokens fall
back to anonymous defaults rather than rejecting the request.
*/
package api
