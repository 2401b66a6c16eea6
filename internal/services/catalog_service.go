package services

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"sort"
	"strings"

	"marketplace-service/internal/models"
	"marketplace-service/internal/repository"

	"github.com/google/uuid"
)

// CatalogService serves the static marketplace catalogs and derives the
// browser-level link fields (tel:, maps directions) for branches.
type CatalogService struct {
	catalog *repository.CatalogRepository
}

func NewCatalogService(catalog *repository.CatalogRepository) *CatalogService {
	return &CatalogService{catalog: catalog}
}

func (s *CatalogService) GetPolicies(ctx context.Context, policyType *models.PolicyType, insurerID *uuid.UUID) ([]models.Policy, error) {
	return s.catalog.GetPolicies(ctx, policyType, insurerID)
}

func (s *CatalogService) GetPolicyByID(ctx context.Context, id uuid.UUID) (*models.Policy, error) {
	return s.catalog.GetPolicyByID(ctx, id)
}

func (s *CatalogService) GetInsurers(ctx context.Context) ([]models.Insurer, error) {
	return s.catalog.GetInsurers(ctx)
}

// GetBranches returns branches with their link fields. When an origin is
// given the list is ordered nearest first and distances are filled in.
func (s *CatalogService) GetBranches(ctx context.Context, city *string, origin *models.GeoJSONPoint) ([]models.BranchWithLinks, error) {
	branches, err := s.catalog.GetBranches(ctx, city)
	if err != nil {
		return nil, err
	}

	result := make([]models.BranchWithLinks, 0, len(branches))
	for _, branch := range branches {
		entry := models.BranchWithLinks{
			Branch:        branch,
			TelLink:       telLink(branch.Phone),
			DirectionsURL: directionsURL(branch),
		}
		if origin != nil {
			km := haversineKm(origin.Lat(), origin.Lng(), branch.Location.Lat(), branch.Location.Lng())
			entry.DistanceKm = &km
		}
		result = append(result, entry)
	}

	if origin != nil {
		sort.SliceStable(result, func(i, j int) bool {
			return *result[i].DistanceKm < *result[j].DistanceKm
		})
	}

	return result, nil
}

func (s *CatalogService) GetHospitalsByCity(ctx context.Context, city string) ([]models.Hospital, error) {
	return s.catalog.GetHospitalsByCity(ctx, city)
}

func (s *CatalogService) GetAddOns(ctx context.Context) ([]models.AddOn, error) {
	return s.catalog.GetAddOns(ctx)
}

func (s *CatalogService) GetRiders(ctx context.Context) ([]models.Rider, error) {
	return s.catalog.GetRiders(ctx)
}

func (s *CatalogService) GetTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	return s.catalog.GetTestimonials(ctx)
}

func (s *CatalogService) GetClaimProcessSteps(ctx context.Context) ([]models.ClaimProcessStep, error) {
	return s.catalog.GetClaimProcessSteps(ctx)
}

func (s *CatalogService) GetMedicalQuestions(ctx context.Context) ([]models.MedicalQuestion, error) {
	return s.catalog.GetMedicalQuestions(ctx)
}

// telLink builds the click-to-call link. String templating only.
func telLink(phone string) string {
	return "tel:" + strings.ReplaceAll(phone, " ", "")
}

// directionsURL builds the maps provider directions link for a branch.
func directionsURL(branch models.Branch) string {
	q := url.Values{}
	q.Set("api", "1")
	q.Set("destination", fmt.Sprintf("%f,%f", branch.Location.Lat(), branch.Location.Lng()))
	return "https://www.google.com/maps/dir/?" + q.Encode()
}

const earthRadiusKm = 6371.0

// haversineKm is the great-circle distance between two WGS84 coordinates.
func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}
