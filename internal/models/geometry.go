package models

import (
	"database/sql/driver"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/ewkb"
	"github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkt"
)

// GeoJSONPoint represents a GeoJSON Point for API input/output. Branch
// locations are stored as PostGIS GEOMETRY(Point, 4326); coordinates are
// [longitude, latitude].
type GeoJSONPoint struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// NewGeoJSONPoint builds a point from a longitude/latitude pair.
func NewGeoJSONPoint(lng, lat float64) GeoJSONPoint {
	return GeoJSONPoint{Type: "Point", Coordinates: []float64{lng, lat}}
}

// Lng returns the longitude, or 0 for a malformed point.
func (g *GeoJSONPoint) Lng() float64 {
	if g == nil || len(g.Coordinates) < 2 {
		return 0
	}
	return g.Coordinates[0]
}

// Lat returns the latitude, or 0 for a malformed point.
func (g *GeoJSONPoint) Lat() float64 {
	if g == nil || len(g.Coordinates) < 2 {
		return 0
	}
	return g.Coordinates[1]
}

// Value implements driver.Valuer: GeoJSON -> geom.Point -> WKT with SRID
// prefix, e.g. "SRID=4326;POINT(72.8777 19.0760)".
func (g GeoJSONPoint) Value() (driver.Value, error) {
	if g.Type == "" {
		return nil, nil
	}

	geoJSONBytes, err := json.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal GeoJSON: %w", err)
	}

	var geometry geom.T
	if err := geojson.Unmarshal(geoJSONBytes, &geometry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal GeoJSON: %w", err)
	}

	point, ok := geometry.(*geom.Point)
	if !ok {
		return nil, fmt.Errorf("geometry is not a Point")
	}

	point.SetSRID(4326)

	wktString, err := wkt.Marshal(point)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal to WKT: %w", err)
	}

	return fmt.Sprintf("SRID=%d;%s", point.SRID(), wktString), nil
}

// Scan implements sql.Scanner: PostGIS EWKB (hex-encoded by lib/pq) back to
// GeoJSON.
func (g *GeoJSONPoint) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	raw, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to scan GeoJSONPoint: expected []byte, got %T", value)
	}

	// lib/pq returns geometry columns hex-encoded.
	if decoded, err := hex.DecodeString(string(raw)); err == nil {
		raw = decoded
	}

	geometry, err := ewkb.Unmarshal(raw)
	if err != nil {
		return fmt.Errorf("failed to unmarshal EWKB: %w", err)
	}

	point, ok := geometry.(*geom.Point)
	if !ok {
		return fmt.Errorf("scanned geometry is not a Point")
	}

	geoJSONBytes, err := geojson.Marshal(point)
	if err != nil {
		return fmt.Errorf("failed to marshal to GeoJSON: %w", err)
	}

	return json.Unmarshal(geoJSONBytes, g)
}
