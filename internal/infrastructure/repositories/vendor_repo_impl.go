package repositories

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"piaas.backend/internal/domain/entities"
	domainerrors "piaas.backend/internal/domain/errors"
	"piaas.backend/internal/infrastructure/models"
)

// VendorRepository implements read-only vendor/product lookups
type VendorRepository struct {
	db *gorm.DB
}

// NewVendorRepository creates a new vendor repository
func NewVendorRepository(db *gorm.DB) *VendorRepository {
	return &VendorRepository{db: db}
}

// GetByID gets a vendor by ID
func (r *VendorRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Vendor, error) {
	var m models.Vendor
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return vendorToEntity(&m), nil
}

// GetProductByID gets a product by ID
func (r *VendorRepository) GetProductByID(ctx context.Context, id uuid.UUID) (*entities.Product, error) {
	var m models.Product
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return &entities.Product{
		ID:             m.ID,
		VendorID:       m.VendorID,
		Name:           m.Name,
		PriceUSDCMinor: null.Int64FromPtr(m.PriceUSDCMinor),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}, nil
}

func vendorToEntity(m *models.Vendor) *entities.Vendor {
	return &entities.Vendor{
		ID:            m.ID,
		Name:          m.Name,
		WalletAddress: m.WalletAddress,
		WebhookURL:    null.StringFromPtr(m.WebhookURL),
		EnabledChains: parseChainList(m.EnabledChains),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// parseChainList parses the comma-separated enabled_chains column
func parseChainList(s string) []int64 {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	chains := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			continue
		}
		chains = append(chains, id)
	}
	return chains
}
