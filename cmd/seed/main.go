package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/staynest/staynest-backend/internal/config"
	"github.com/staynest/staynest-backend/internal/db"
	"github.com/staynest/staynest-backend/internal/model"
)

const seedHostUID = "seed-host"

func main() {
	if err := run(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run() error {
	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	gdb, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}

	if err := gdb.WithContext(ctx).AutoMigrate(&model.Profile{}, &model.Property{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	canSeed, err := shouldSeed(ctx, gdb)
	if err != nil {
		return err
	}
	if !canSeed {
		log.Printf("properties already exist; skipping seed (set FORCE_SEED=true to override)")
		return nil
	}

	props := buildSeedProperties()

	err = gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		host := model.Profile{
			UID:       seedHostUID,
			Email:     "host@staynest.app",
			FirstName: "Sample",
			LastName:  "Host",
			IsHost:    true,
		}
		if err := tx.Where("uid = ?", seedHostUID).FirstOrCreate(&host).Error; err != nil {
			return fmt.Errorf("seed host profile: %w", err)
		}
		if err := tx.Where("host_uid = ?", seedHostUID).Delete(&model.Property{}).Error; err != nil {
			return fmt.Errorf("clear seed properties: %w", err)
		}
		for i := range props {
			props[i].HostUID = seedHostUID
			if err := tx.Create(&props[i]).Error; err != nil {
				return fmt.Errorf("insert property %q: %w", props[i].Title, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("seeded %d properties", len(props))
	return nil
}

func buildSeedProperties() []model.Property {
	f := func(v float64) *float64 { return &v }

	return []model.Property{
		{
			Title: "Sunny Loft near the Waterfront", PropertyType: "apartment",
			Description:   "Bright open-plan loft a short walk from the harbor, with fast wifi and a dedicated work desk.",
			Address:       "12 Harbor Lane", City: "Portland", State: "Maine", Country: "USA", PostalCode: "04101",
			Latitude:      f(43.6591), Longitude: f(-70.2568),
			PricePerNight: 145, Bedrooms: 1, Bathrooms: 1, MaxGuests: 2,
			Amenities:     []string{"wifi", "kitchen", "washer", "dedicated_workspace"},
			Images:        []string{picsumURL("loft", 1), picsumURL("loft", 2)},
			IsActive:      true,
		},
		{
			Title: "Cedar Cabin with Hot Tub", PropertyType: "cabin",
			Description:   "Quiet cabin at the edge of the forest. Wood stove, outdoor hot tub, and a wraparound deck.",
			Address:       "88 Ridge Road", City: "Asheville", State: "North Carolina", Country: "USA", PostalCode: "28801",
			Latitude:      f(35.5951), Longitude: f(-82.5515),
			PricePerNight: 210, Bedrooms: 2, Bathrooms: 1, MaxGuests: 4,
			Amenities:     []string{"wifi", "kitchen", "hot_tub", "fireplace", "free_parking"},
			Images:        []string{picsumURL("cabin", 1), picsumURL("cabin", 2), picsumURL("cabin", 3)},
			IsActive:      true,
		},
		{
			Title: "Downtown Studio, Walk Everywhere", PropertyType: "apartment",
			Description:   "Compact studio in the middle of everything. Elevator building, in-unit laundry.",
			Address:       "401 5th Avenue", City: "Seattle", State: "Washington", Country: "USA", PostalCode: "98104",
			Latitude:      f(47.6038), Longitude: f(-122.3301),
			PricePerNight: 120, Bedrooms: 1, Bathrooms: 1, MaxGuests: 2,
			Amenities:     []string{"wifi", "washer", "air_conditioning", "elevator"},
			Images:        []string{picsumURL("studio", 1)},
			IsActive:      true,
		},
		{
			Title: "Family House with Big Backyard", PropertyType: "house",
			Description:   "Four-bedroom house on a quiet street. Fenced yard, grill, and room for two cars.",
			Address:       "230 Maple Court", City: "Austin", State: "Texas", Country: "USA", PostalCode: "78704",
			Latitude:      f(30.2500), Longitude: f(-97.7500),
			PricePerNight: 275, Bedrooms: 4, Bathrooms: 2, MaxGuests: 8,
			Amenities:     []string{"wifi", "kitchen", "free_parking", "bbq_grill", "backyard", "washer", "dryer"},
			Images:        []string{picsumURL("house", 1), picsumURL("house", 2)},
			IsActive:      true,
		},
		{
			Title: "Beachfront Condo with Ocean View", PropertyType: "condo",
			Description:   "Top-floor condo right on the sand. Pool, gym, and sunsets from the balcony.",
			Address:       "7 Shoreline Drive", City: "San Diego", State: "California", Country: "USA", PostalCode: "92109",
			Latitude:      f(32.7941), Longitude: f(-117.2543),
			PricePerNight: 320, Bedrooms: 2, Bathrooms: 2, MaxGuests: 5,
			Amenities:     []string{"wifi", "pool", "gym", "air_conditioning", "beach_access"},
			Images:        []string{picsumURL("condo", 1), picsumURL("condo", 2)},
			IsActive:      true,
		},
		{
			Title: "Tiny A-Frame in the Pines", PropertyType: "cabin",
			Description:   "Minimalist A-frame for two. No TV, great stars.",
			Address:       "5 Forest Loop", City: "Bend", State: "Oregon", Country: "USA", PostalCode: "97701",
			Latitude:      f(44.0582), Longitude: f(-121.3153),
			PricePerNight: 95, Bedrooms: 1, Bathrooms: 1, MaxGuests: 2,
			Amenities:     []string{"kitchen", "fireplace", "free_parking"},
			Images:        []string{picsumURL("aframe", 1)},
			IsActive:      true,
		},
	}
}

func shouldSeed(ctx context.Context, gdb *gorm.DB) (bool, error) {
	var cnt int64
	if err := gdb.WithContext(ctx).Model(&model.Property{}).Count(&cnt).Error; err != nil {
		return false, fmt.Errorf("count properties: %w", err)
	}
	if cnt == 0 {
		return true, nil
	}
	force := os.Getenv("FORCE_SEED")
	return strings.EqualFold(force, "true"), nil
}

func picsumURL(slug string, k int) string {
	return fmt.Sprintf("https://picsum.photos/seed/%s-%d/800/600", slug, k)
}
