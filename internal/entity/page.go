package entity

import (
	"html/template"
	"time"
)

// About is the rendered observatory notes block for the page header.
type About struct {
	Title string
	HTML  template.HTML
}

// Site carries the display identity of the archive, taken from config.
type Site struct {
	Name     string
	Subtitle string
	Location string
}

// ArchivePage is the render-ready aggregate passed to the tpladapter.
type ArchivePage struct {
	Site        Site
	Conditions  *ConditionsSnapshot
	Days        []DayRecord // Sorted by Date descending, length 0..7
	Snapshot    *MediaFile  // Latest snapshot.jpg or nil
	AboutHTML   template.HTML
	AboutTitle  string
	GeneratedAt time.Time
}
