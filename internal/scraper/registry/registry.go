// Package registry holds the fixed set of scrapers the dashboard can launch.
package registry

// Definition describes one registered scraper. SourceTag is the value
// written into integrated leads and recognized by the scoring engine's
// source vocabulary.
type Definition struct {
	Name      string `json:"name"`
	SourceTag string `json:"sourceTag"`
	Script    string `json:"script"`
	Kind      string `json:"kind"`
}

// All lists every launchable scraper.
var All = []Definition{
	{Name: "Working Lead Scraper", SourceTag: "working_lead_scraper", Script: "working_lead_scraper.py", Kind: "python"},
	{Name: "Playwright Scraper", SourceTag: "playwright", Script: "robust_playwright_scraper.py", Kind: "python"},
	{Name: "Crawl4AI Analyzer", SourceTag: "crawl4ai", Script: "crawl4ai_lead_analyzer.py", Kind: "python"},
	{Name: "Google Maps Scraper", SourceTag: "google_maps", Script: "google-maps-scraper/main.go", Kind: "go"},
	{Name: "KI Automation", SourceTag: "ki_automation", Script: "ki_automation_analyzer.py", Kind: "python"},
}

// Lookup finds a scraper definition by name.
func Lookup(name string) (Definition, bool) {
	for _, def := range All {
		if def.Name == name {
			return def, true
		}
	}
	return Definition{}, false
}

// LookupBySourceTag finds a scraper definition by its source tag.
func LookupBySourceTag(tag string) (Definition, bool) {
	for _, def := range All {
		if def.SourceTag == tag {
			return def, true
		}
	}
	return Definition{}, false
}
