// Package models tracks all api models for request and responses
package models

import "github.com/applkanji/website/slideshow"

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status    string   `json:"status"`
	Slides    int      `json:"slides"`
	Viewers   int      `json:"viewers"`
	Assets    int      `json:"assets"`
	Languages []string `json:"languages"`
}

// SlideshowState describes a hero slideshow.
type SlideshowState struct {
	ID             string          `json:"id,omitempty"`
	State          slideshow.State `json:"state"`
	Class          string          `json:"class"`
	Slides         []string        `json:"slides"`
	IntervalMillis int64           `json:"interval_ms"`
}

// SlideChange is streamed each time a slideshow moves. Class is the CSS
// class animating the new slide.
type SlideChange struct {
	State slideshow.State `json:"state"`
	Class string          `json:"class"`
}

type Toast struct {
	Variant     string `json:"variant"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ContactResponse answers a contact form posted by script. Errors maps a
// rejected field to its localized message.
type ContactResponse struct {
	Success bool              `json:"success"`
	Toast   Toast             `json:"toast"`
	Errors  map[string]string `json:"errors,omitempty"`
}
