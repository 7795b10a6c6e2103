package ingest

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/huffmanks/movie-picker/internal/domain"
)

// nfoDocument maps the per-title metadata format (Kodi-style NFO). The root
// element name varies by content type (<movie> or <tvshow>), so no XMLName
// is declared.
type nfoDocument struct {
	Title     string       `xml:"title"`
	Year      int          `xml:"year"`
	Plot      string       `xml:"plot"`
	Runtime   string       `xml:"runtime"`
	Premiered string       `xml:"premiered"`
	Genres    []string     `xml:"genre"`
	Tags      []string     `xml:"tag"`
	Rating    float64      `xml:"ratings>rating>value"`
	Thumbs    []string     `xml:"thumb"`
	Actors    []nfoActor   `xml:"actor"`
	UniqueIDs []nfoUniqueID `xml:"uniqueid"`
	LegacyID  string       `xml:"id"` // older exports carry a bare <id>
}

type nfoActor struct {
	Name string `xml:"name"`
}

type nfoUniqueID struct {
	Type    string `xml:"type,attr"`
	Default bool   `xml:"default,attr"`
	Value   string `xml:",chardata"`
}

// ParseNFO reads one NFO document and maps it to a media item plus the
// poster URL (not stored on the item; the downloader decides the final
// image path).
func ParseNFO(r io.Reader) (*domain.MediaItem, string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read nfo: %w", err)
	}

	var doc nfoDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, "", fmt.Errorf("failed to parse nfo: %w", err)
	}

	id := doc.externalID()
	if id == "" {
		return nil, "", fmt.Errorf("nfo for %q has no unique id", doc.Title)
	}
	if strings.TrimSpace(doc.Title) == "" {
		return nil, "", fmt.Errorf("nfo %s has no title", id)
	}

	actors := make([]string, 0, len(doc.Actors))
	for _, a := range doc.Actors {
		if a.Name != "" {
			actors = append(actors, a.Name)
		}
	}

	item := &domain.MediaItem{
		ID:          id,
		Title:       doc.Title,
		Year:        doc.Year,
		Description: doc.Plot,
		Runtime:     doc.Runtime,
		Premiered:   doc.Premiered,
		Genre:       doc.Genres,
		Tag:         doc.Tags,
		Rating:      doc.Rating,
		Actors:      actors,
	}

	poster := ""
	if len(doc.Thumbs) > 0 {
		poster = doc.Thumbs[0]
	}

	return item, poster, nil
}

// externalID picks the default uniqueid, falling back to the first one and
// then to the legacy <id> element.
func (d *nfoDocument) externalID() string {
	for _, uid := range d.UniqueIDs {
		if uid.Default && strings.TrimSpace(uid.Value) != "" {
			return strings.TrimSpace(uid.Value)
		}
	}
	for _, uid := range d.UniqueIDs {
		if strings.TrimSpace(uid.Value) != "" {
			return strings.TrimSpace(uid.Value)
		}
	}
	return strings.TrimSpace(d.LegacyID)
}
