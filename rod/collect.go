package rod

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/pagescope"
)

// collectJS captures the page state a DocumentView needs: serialized DOM,
// rendered body text, viewport, resource timeline and per-element rendering
// data. Elements are indexed in document order over querySelectorAll("*").
// Only elements with a background image or image state are reported; each is
// stamped with pagescope.StateAttr while the DOM is serialized.
const collectJS = `() => {
  const attr = "data-pagescope-idx";
  const elements = [];
  const stamped = [];
  const all = document.querySelectorAll("*");
  for (let i = 0; i < all.length; i++) {
    const el = all[i];
    const state = { index: i, tag: el.tagName.toLowerCase() };
    let keep = false;
    try {
      const bg = getComputedStyle(el).backgroundImage;
      if (bg && bg !== "none") {
        state.backgroundImage = bg;
        keep = true;
      }
    } catch (e) {}
    if (el instanceof HTMLImageElement) {
      const rect = el.getBoundingClientRect();
      state.currentSrc = el.currentSrc || "";
      state.naturalWidth = el.naturalWidth || 0;
      state.naturalHeight = el.naturalHeight || 0;
      state.clientWidth = el.clientWidth || 0;
      state.clientHeight = el.clientHeight || 0;
      state.top = rect.top || 0;
      state.loading = el.loading || "";
      keep = true;
    }
    if (keep) {
      el.setAttribute(attr, String(i));
      stamped.push(el);
      elements.push(state);
    }
  }
  const resources = (performance.getEntriesByType("resource") || []).map((entry) => ({
    name: entry.name,
    transferSize: Number.isFinite(entry.transferSize) ? entry.transferSize : 0,
  }));
  const doctype = document.doctype ? "<!DOCTYPE " + document.doctype.name + ">" : "";
  let html;
  try {
    html = doctype + document.documentElement.outerHTML;
  } finally {
    for (const el of stamped) {
      el.removeAttribute(attr);
    }
  }
  return JSON.stringify({
    url: location.href,
    title: document.title || "",
    html,
    bodyText: (document.body && document.body.innerText) || "",
    viewportHeight: window.innerHeight || 0,
    resources,
    elements,
  });
}`

// decodeSnapshot parses the JSON produced by collectJS.
func decodeSnapshot(raw string) (*pagescope.Snapshot, error) {
	var snap pagescope.Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return nil, fmt.Errorf("decoding page snapshot: %w", err)
	}
	return &snap, nil
}
