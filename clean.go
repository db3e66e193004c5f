// Package clean provides a crawl-and-download utility for public-records
// disclosure data published by police agencies. It scrapes file metadata
// from an agency's disclosure index, follows case pages into the linked
// records-request platform, and downloads the disclosed documents and
// videos into a local, idempotent cache.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, resty/, fs/, sqlite/).
package clean
