package domain

import (
	"fmt"
	"time"
)

const DefaultAuthor = "Unknown"

type Sector string

const (
	SectorEngineering Sector = "Engineering"
	SectorHealth      Sector = "Health"
	SectorFinance     Sector = "Finance"
	SectorEducation   Sector = "Education"
	SectorLegal       Sector = "Legal"
	SectorGeneral     Sector = "General"
)

var Sectors = []Sector{
	SectorEngineering,
	SectorHealth,
	SectorFinance,
	SectorEducation,
	SectorLegal,
	SectorGeneral,
}

// ParseSector validates a sector query value. The empty string maps to
// General, which the feed treats as "no filter".
func ParseSector(s string) (Sector, error) {
	if s == "" {
		return SectorGeneral, nil
	}
	for _, sector := range Sectors {
		if string(sector) == s {
			return sector, nil
		}
	}
	return "", fmt.Errorf("unknown sector: %q", s)
}

type ImpactLevel string

const (
	ImpactHigh   ImpactLevel = "High"
	ImpactMedium ImpactLevel = "Medium"
	ImpactLow    ImpactLevel = "Low"
)

// Article is the single persisted news entity. ID is derived from SourceURL
// (see NewsID), so repeated syncs of the same URL upsert the same row.
type Article struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Summary     string      `json:"summary"`
	Content     string      `json:"content"`
	SourceURL   string      `json:"source_url"`
	ImageURL    string      `json:"image_url"`
	PublishedAt time.Time   `json:"published_at"`
	Sector      Sector      `json:"sector"`
	ImpactLevel ImpactLevel `json:"impact_level"`
	SourceName  string      `json:"source_name"`
	Author      string      `json:"author"`
}
