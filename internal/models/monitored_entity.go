package models

import (
	"errors"
	"fmt"
	"sort"
)

// Direction classifies the traffic flow measured by an entity.
type Direction string

const (
	DirectionIn  Direction = "IN"
	DirectionOut Direction = "OUT"
	DirectionAll Direction = "ALL"
)

func (d Direction) IsValid() bool {
	return d == DirectionIn || d == DirectionOut || d == DirectionAll
}

// ErrInvalidEntityConfig is returned when the monitored entity configuration
// breaks one of the catalog invariants.
var ErrInvalidEntityConfig = errors.New("invalid monitored entity config")

// MonitoredEntity is a configured group of detectors of one device that share
// a traffic direction.
type MonitoredEntity struct {
	DeviceID    string    `json:"deviceId"`
	Detectors   []string  `json:"detectors"`
	Direction   Direction `json:"direction"`
	Description string    `json:"description,omitempty"`
	Keywords    []string  `json:"keywords,omitempty"`
}

// DirectionKey is the series key for this entity's direction, e.g. "OULU002_IN".
func (e *MonitoredEntity) DirectionKey() string {
	return DirectionSeriesKey(e.DeviceID, e.Direction)
}

// HasAnyKeyword reports whether the entity carries at least one of keywords.
func (e *MonitoredEntity) HasAnyKeyword(keywords map[string]struct{}) bool {
	for _, kw := range e.Keywords {
		if _, ok := keywords[kw]; ok {
			return true
		}
	}
	return false
}

type detectorRef struct {
	deviceID   string
	detectorID string
}

// EntityCatalog is the immutable, validated set of monitored entities loaded
// at startup. It is safe for concurrent reads.
type EntityCatalog struct {
	entities   []*MonitoredEntity
	byDetector map[detectorRef]*MonitoredEntity
	deviceIDs  []string
}

// NewEntityCatalog validates entities and indexes them by (device, detector).
// Every entity needs a device ID, a valid direction and at least one detector,
// and a (device, detector) pair may belong to only one entity. All IN entities
// of a device share one description, and likewise for OUT, because the
// per-site summaries read the device-level {dev}_IN and {dev}_OUT series.
func NewEntityCatalog(entities []MonitoredEntity) (*EntityCatalog, error) {
	catalog := &EntityCatalog{
		entities:   make([]*MonitoredEntity, 0, len(entities)),
		byDetector: make(map[detectorRef]*MonitoredEntity),
	}
	seenDevices := make(map[string]struct{})
	descriptions := make(map[string]string)

	for i := range entities {
		entity := entities[i]
		if entity.DeviceID == "" {
			return nil, fmt.Errorf("%w: entity at index %d: missing deviceId", ErrInvalidEntityConfig, i)
		}
		if !entity.Direction.IsValid() {
			return nil, fmt.Errorf("%w: entity %s at index %d: invalid direction %q", ErrInvalidEntityConfig, entity.DeviceID, i, entity.Direction)
		}
		if len(entity.Detectors) == 0 {
			return nil, fmt.Errorf("%w: entity %s at index %d: detectors cannot be empty", ErrInvalidEntityConfig, entity.DeviceID, i)
		}

		if entity.Direction == DirectionIn || entity.Direction == DirectionOut {
			seriesKey := DirectionSeriesKey(entity.DeviceID, entity.Direction)
			if description, seen := descriptions[seriesKey]; seen && description != entity.Description {
				return nil, fmt.Errorf("%w: entity %s at index %d: %s entities of a device must share one description (%q, %q)",
					ErrInvalidEntityConfig, entity.DeviceID, i, entity.Direction, description, entity.Description)
			}
			descriptions[seriesKey] = entity.Description
		}

		entity.Detectors = append([]string(nil), entity.Detectors...)
		entity.Keywords = append([]string(nil), entity.Keywords...)
		stored := &entity

		for _, detectorID := range entity.Detectors {
			ref := detectorRef{deviceID: entity.DeviceID, detectorID: detectorID}
			if _, exists := catalog.byDetector[ref]; exists {
				return nil, fmt.Errorf("%w: detector %s/%s is configured more than once", ErrInvalidEntityConfig, entity.DeviceID, detectorID)
			}
			catalog.byDetector[ref] = stored
		}

		if _, seen := seenDevices[entity.DeviceID]; !seen {
			seenDevices[entity.DeviceID] = struct{}{}
			catalog.deviceIDs = append(catalog.deviceIDs, entity.DeviceID)
		}
		catalog.entities = append(catalog.entities, stored)
	}

	return catalog, nil
}

// Entities returns the entities in configuration order.
func (c *EntityCatalog) Entities() []*MonitoredEntity {
	return c.entities
}

// DeviceIDs returns the distinct device IDs in configuration order.
func (c *EntityCatalog) DeviceIDs() []string {
	return c.deviceIDs
}

// Match returns the entity that owns the given detector, or nil.
func (c *EntityCatalog) Match(deviceID, detectorID string) *MonitoredEntity {
	return c.byDetector[detectorRef{deviceID: deviceID, detectorID: detectorID}]
}

// EntitiesForDevice returns every entity configured for deviceID.
func (c *EntityCatalog) EntitiesForDevice(deviceID string) []*MonitoredEntity {
	var out []*MonitoredEntity
	for _, e := range c.entities {
		if e.DeviceID == deviceID {
			out = append(out, e)
		}
	}
	return out
}

// DeviceKeywords returns the union of keywords of all entities of deviceID,
// in first-seen order.
func (c *EntityCatalog) DeviceKeywords(deviceID string) []string {
	seen := make(map[string]struct{})
	keywords := make([]string, 0)
	for _, e := range c.EntitiesForDevice(deviceID) {
		for _, kw := range e.Keywords {
			if _, ok := seen[kw]; ok {
				continue
			}
			seen[kw] = struct{}{}
			keywords = append(keywords, kw)
		}
	}
	return keywords
}

// Keywords returns all distinct keywords, sorted.
func (c *EntityCatalog) Keywords() []string {
	seen := make(map[string]struct{})
	for _, e := range c.entities {
		for _, kw := range e.Keywords {
			seen[kw] = struct{}{}
		}
	}
	keywords := make([]string, 0, len(seen))
	for kw := range seen {
		keywords = append(keywords, kw)
	}
	sort.Strings(keywords)
	return keywords
}

// FilterByKeywords returns a catalog restricted to devices that have at least
// one entity tagged with one of keywords. All entities of a matching device are
// kept. An empty keyword set returns the receiver unchanged.
func (c *EntityCatalog) FilterByKeywords(keywords []string) *EntityCatalog {
	if len(keywords) == 0 {
		return c
	}
	wanted := KeywordSet(keywords)

	matchingDevices := make(map[string]struct{})
	for _, e := range c.entities {
		if e.HasAnyKeyword(wanted) {
			matchingDevices[e.DeviceID] = struct{}{}
		}
	}

	filtered := &EntityCatalog{byDetector: make(map[detectorRef]*MonitoredEntity)}
	for _, e := range c.entities {
		if _, ok := matchingDevices[e.DeviceID]; !ok {
			continue
		}
		filtered.entities = append(filtered.entities, e)
		for _, detectorID := range e.Detectors {
			filtered.byDetector[detectorRef{deviceID: e.DeviceID, detectorID: detectorID}] = e
		}
	}
	for _, deviceID := range c.deviceIDs {
		if _, ok := matchingDevices[deviceID]; ok {
			filtered.deviceIDs = append(filtered.deviceIDs, deviceID)
		}
	}
	return filtered
}

// KeywordSet builds a lookup set from a keyword list, ignoring empty strings.
func KeywordSet(keywords []string) map[string]struct{} {
	set := make(map[string]struct{}, len(keywords))
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		set[kw] = struct{}{}
	}
	return set
}
