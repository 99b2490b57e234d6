package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/thanhngo/glowcare-backend/config"
	"github.com/thanhngo/glowcare-backend/internal/app/model"
	"github.com/thanhngo/glowcare-backend/internal/app/repository"
	"github.com/thanhngo/glowcare-backend/internal/db"
	"github.com/thanhngo/glowcare-backend/pkg/util"
	"github.com/xuri/excelize/v2"
)

// Seeds the database with demo data. An optional XLSX file path loads the
// product catalog; without it a small built-in catalog is used.
//
//	go run cmd/seed/main.go [products.xlsx]
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	var products []model.Product
	if len(os.Args) > 1 {
		fmt.Printf("Reading XLSX file: %s\n", os.Args[1])
		products, err = readProductsFromXLSX(os.Args[1])
		if err != nil {
			log.Fatal("Failed to read XLSX:", err)
		}
	} else {
		products = defaultProducts()
	}

	productRepo := repository.NewProductRepository(db.GetDB())
	created := 0
	for i := range products {
		if err := productRepo.Create(&products[i]); err != nil {
			fmt.Printf("Skipping product %q: %v\n", products[i].Name, err)
			continue
		}
		created++
	}
	fmt.Printf("Seeded %d products\n", created)

	seedAdmin()
	seedShippingMethods()
	seedVouchers()

	fmt.Println("Done.")
}

func seedAdmin() {
	userRepo := repository.NewUserRepository(db.GetDB())
	if _, err := userRepo.FindByEmail("admin@glowcare.vn"); err == nil {
		fmt.Println("Admin account already exists")
		return
	}

	hash, err := util.HashPassword("glowcare-admin")
	if err != nil {
		log.Fatal("Failed to hash admin password:", err)
	}
	admin := &model.User{
		Email:        "admin@glowcare.vn",
		PasswordHash: hash,
		Name:         "GlowCare Admin",
		Role:         model.RoleAdmin,
	}
	if err := userRepo.Create(admin); err != nil {
		log.Fatal("Failed to create admin account:", err)
	}
	fmt.Println("Seeded admin account (admin@glowcare.vn)")
}

func seedShippingMethods() {
	shippingRepo := repository.NewShippingRepository(db.GetDB())
	methods := []model.ShippingMethod{
		{Name: "Standard", Cost: 20000, Method: "Giao hang tiet kiem"},
		{Name: "Express", Cost: 45000, Method: "Giao hang nhanh"},
	}
	for i := range methods {
		if err := shippingRepo.Create(&methods[i]); err != nil {
			fmt.Printf("Skipping shipping method %q: %v\n", methods[i].Name, err)
		}
	}
	fmt.Println("Seeded shipping methods")
}

func seedVouchers() {
	voucherRepo := repository.NewVoucherRepository(db.GetDB())
	now := time.Now()
	vouchers := []model.Voucher{
		{
			Code:           "WELCOME50",
			DiscountAmount: 50000,
			Status:         model.VoucherStatusActive,
			StartDate:      now.AddDate(0, 0, -1),
			ExpiryDate:     now.AddDate(0, 1, 0),
		},
		{
			Code:           "GLOW20",
			DiscountAmount: 20000,
			Status:         model.VoucherStatusActive,
			StartDate:      now.AddDate(0, 0, -1),
			ExpiryDate:     now.AddDate(0, 0, 14),
		},
	}
	for i := range vouchers {
		if err := voucherRepo.Create(&vouchers[i]); err != nil {
			fmt.Printf("Skipping voucher %q: %v\n", vouchers[i].Code, err)
		}
	}
	fmt.Println("Seeded vouchers")
}

// readProductsFromXLSX expects columns:
// name, brand, category, price, discounted_price, quantity, skin_types, image_url
func readProductsFromXLSX(filePath string) ([]model.Product, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("no data rows found in XLSX file")
	}

	var products []model.Product
	skipped := 0
	for i, row := range rows[1:] {
		if len(row) < 6 {
			skipped++
			continue
		}

		price, err := strconv.ParseFloat(strings.TrimSpace(row[3]), 64)
		if err != nil || price <= 0 {
			fmt.Printf("Row %d: invalid price %q, skipping\n", i+2, row[3])
			skipped++
			continue
		}
		discounted, err := strconv.ParseFloat(strings.TrimSpace(row[4]), 64)
		if err != nil || discounted <= 0 || discounted > price {
			discounted = price
		}
		quantity, err := strconv.Atoi(strings.TrimSpace(row[5]))
		if err != nil || quantity < 0 {
			quantity = 0
		}

		var skinTypes []string
		if len(row) > 6 && row[6] != "" {
			for _, s := range strings.Split(row[6], ",") {
				skinTypes = append(skinTypes, strings.TrimSpace(s))
			}
		}
		imageURL := ""
		if len(row) > 7 {
			imageURL = strings.TrimSpace(row[7])
		}

		products = append(products, model.Product{
			Name:            strings.TrimSpace(row[0]),
			Brand:           strings.TrimSpace(row[1]),
			Category:        model.ProductCategory(strings.TrimSpace(row[2])),
			Price:           price,
			DiscountedPrice: discounted,
			Quantity:        quantity,
			SkinTypes:       pq.StringArray(skinTypes),
			ImageURL:        imageURL,
		})
	}

	if skipped > 0 {
		fmt.Printf("Skipped %d rows\n", skipped)
	}
	return products, nil
}

func defaultProducts() []model.Product {
	return []model.Product{
		{
			Name:            "Gentle Foam Cleanser",
			Brand:           "GlowCare",
			Category:        model.CategoryCleanser,
			Description:     "Low-pH foaming cleanser for daily use",
			Price:           180000,
			DiscountedPrice: 150000,
			Quantity:        120,
			SkinTypes:       pq.StringArray{"oily", "combination"},
		},
		{
			Name:            "Hydrating Toner",
			Brand:           "GlowCare",
			Category:        model.CategoryToner,
			Description:     "Alcohol-free toner with hyaluronic acid",
			Price:           220000,
			DiscountedPrice: 220000,
			Quantity:        80,
			SkinTypes:       pq.StringArray{"dry", "sensitive"},
		},
		{
			Name:            "Vitamin C Serum",
			Brand:           "GlowCare",
			Category:        model.CategorySerum,
			Description:     "10% ascorbic acid brightening serum",
			Price:           450000,
			DiscountedPrice: 380000,
			Quantity:        60,
			SkinTypes:       pq.StringArray{"all"},
		},
		{
			Name:            "Ceramide Moisturizer",
			Brand:           "GlowCare",
			Category:        model.CategoryMoisturizer,
			Description:     "Barrier repair cream with ceramides",
			Price:           320000,
			DiscountedPrice: 320000,
			Quantity:        90,
			SkinTypes:       pq.StringArray{"dry", "normal"},
		},
		{
			Name:            "Daily Sunscreen SPF50+",
			Brand:           "GlowCare",
			Category:        model.CategorySunscreen,
			Description:     "Broad spectrum SPF50+ PA++++",
			Price:           280000,
			DiscountedPrice: 250000,
			Quantity:        150,
			SkinTypes:       pq.StringArray{"all"},
		},
	}
}
