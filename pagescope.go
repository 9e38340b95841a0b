// Package pagescope extracts structured information from web pages: images,
// links, contact details, SEO metadata, tables, readable article text,
// performance hints, DOM query matches and third-party tracker domains.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, sqlite/).
package pagescope
