package rest

import (
	"time"

	"recommendation-service/internal/core/domain"
)

const virtualTourPlaceholder = "https://placeholder.com/virtual-tour"

type SignInRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserDTO struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Role            string   `json:"role"`
	HouseholdIncome *float64 `json:"household_income,omitempty"`
}

type SignInDataDTO struct {
	User UserDTO `json:"user"`
}

type SignInResponseDTO struct {
	Status  string        `json:"status"`
	Message string        `json:"message"`
	Token   string        `json:"token"`
	Data    SignInDataDTO `json:"data"`
}

// RecommendationDTO is one candidate in the order the retriever produced it.
type RecommendationDTO struct {
	ID                    string   `json:"id"`
	Address               string   `json:"address"`
	Type                  string   `json:"type"`
	Size                  float64  `json:"size"`
	Bedrooms              int      `json:"bedrooms"`
	Bathrooms             int      `json:"bathrooms"`
	MonthlyRent           float64  `json:"monthly_rent"`
	Amenities             []string `json:"amenities"`
	Location              string   `json:"location"`
	LandlordID            string   `json:"landlord_id"`
	LandlordRating        *float64 `json:"landlord_rating"`
	SustainabilityScore   *float64 `json:"sustainability_score"`
	NeighborhoodSafety    *float64 `json:"neighborhood_safety"`
	NeighborhoodCrimeRate *float64 `json:"neighborhood_crime_rate"`
	VirtualTourLink       string   `json:"virtualTourLink"`
	Score                 float64  `json:"score"`
	Persisted             bool     `json:"persisted"`
}

type RecommendationsResponseDTO struct {
	Status          string              `json:"status"`
	Results         int                 `json:"results"`
	Persisted       int                 `json:"persisted"`
	UserID          string              `json:"user_id"`
	Recommendations []RecommendationDTO `json:"recommendations"`
}

type ReviewDTO struct {
	ID       string    `json:"id"`
	Comment  string    `json:"comment"`
	Rating   *int      `json:"rating"`
	UserID   string    `json:"user_id"`
	UserName string    `json:"user_name,omitempty"`
	Date     time.Time `json:"date"`
}

type ReviewsResponseDTO struct {
	Status     string      `json:"status"`
	Results    int         `json:"results"`
	PropertyID string      `json:"property_id"`
	Reviews    []ReviewDTO `json:"reviews"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:              u.ID.String(),
		Name:            u.Name,
		Email:           u.Email,
		Role:            u.Role,
		HouseholdIncome: u.HouseholdIncome,
	}
}

func toRecommendationsResponse(result *domain.RecommendationResult) RecommendationsResponseDTO {
	recs := make([]RecommendationDTO, 0, len(result.Recommendations))
	for _, sc := range result.Recommendations {
		p := sc.Property
		dto := RecommendationDTO{
			ID:                  p.ID.String(),
			Address:             p.Address,
			Type:                p.Type,
			Size:                p.Size,
			Bedrooms:            p.Bedrooms,
			Bathrooms:           p.Bathrooms,
			MonthlyRent:         p.MonthlyRent,
			Amenities:           p.Amenities,
			Location:            p.Location,
			LandlordID:          p.LandlordID.String(),
			SustainabilityScore: p.SustainabilityScore,
			VirtualTourLink:     virtualTourPlaceholder,
			Score:               sc.Score,
			Persisted:           sc.Persisted,
		}
		if dto.Amenities == nil {
			dto.Amenities = []string{}
		}
		if sc.Landlord != nil {
			dto.LandlordRating = sc.Landlord.Rating
		}
		if sc.Neighborhood != nil {
			dto.NeighborhoodSafety = sc.Neighborhood.SafetyRating
			dto.NeighborhoodCrimeRate = sc.Neighborhood.CrimeRate
		}
		recs = append(recs, dto)
	}

	return RecommendationsResponseDTO{
		Status:          "success",
		Results:         len(recs),
		Persisted:       result.PersistedCount,
		UserID:          result.UserID.String(),
		Recommendations: recs,
	}
}

func toReviewDTOs(reviews []domain.Review) []ReviewDTO {
	out := make([]ReviewDTO, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, ReviewDTO{
			ID:       r.ID.String(),
			Comment:  r.Comment,
			Rating:   r.Rating,
			UserID:   r.UserID.String(),
			UserName: r.UserName,
			Date:     r.Date,
		})
	}
	return out
}
