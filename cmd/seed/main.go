package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mercatoapp/mercato-backend/pkg/config"
	"github.com/mercatoapp/mercato-backend/pkg/db"
	"github.com/mercatoapp/mercato-backend/pkg/db/models"
	"github.com/mercatoapp/mercato-backend/pkg/logger"
)

type seedProduct struct {
	name        string
	description string
	price       int64
	imageURL    string
	isPromo     bool
}

type seedCategory struct {
	name     string
	slug     string
	emoji    string
	position int
	products []seedProduct
}

var catalog = []seedCategory{
	{
		name: "Pizza", slug: "pizza", emoji: "🍕", position: 1,
		products: []seedProduct{
			{"Pizza Margherita", "Salsa de tomate, mozzarella y albahaca fresca.", 22000, "https://images.unsplash.com/photo-1513104890138-7c749659a591?auto=format&fit=crop&q=80&w=400", false},
			{"Pizza Pepperoni", "Pepperoni, salsa y doble queso.", 24000, "https://images.unsplash.com/photo-1628840042765-356cda07504e?auto=format&fit=crop&q=80&w=400", false},
			{"Pizza Hawaiana", "Jamón, piña y queso mozzarella.", 23000, "https://images.unsplash.com/photo-1565299624946-b28f40a0ae38?auto=format&fit=crop&q=80&w=400", false},
		},
	},
	{
		name: "Hamburguesas", slug: "hamburguesas", emoji: "🍔", position: 2,
		products: []seedProduct{
			{"Classic Burger", "Carne, lechuga, tomate y salsa especial.", 18000, "https://images.unsplash.com/photo-1568901346375-23c9450c58cd?auto=format&fit=crop&q=80&w=400", false},
			{"Doble Carne", "Doble medallón, bacon y queso cheddar.", 24000, "https://images.unsplash.com/photo-1553979459-d2229ba7433b?auto=format&fit=crop&q=80&w=400", false},
			{"Pollo Crispy", "Pechuga empanizada, coles y mayonesa.", 19000, "https://images.unsplash.com/photo-1571091718767-18b5b1457add?auto=format&fit=crop&q=80&w=400", false},
		},
	},
	{
		name: "Perros Calientes", slug: "perros", emoji: "🌭", position: 3,
		products: []seedProduct{
			{"Perro Americano", "Salchicha, mostaza, salsa de tomate y cebolla.", 12000, "https://images.unsplash.com/photo-1612392062422-ef19b42f74df?auto=format&fit=crop&q=80&w=400", false},
			{"Perro Ranchero", "Papa criolla, salsa ranchera y queso.", 14000, "https://images.unsplash.com/photo-1558030006-450675393462?auto=format&fit=crop&q=80&w=400", false},
		},
	},
	{
		name: "Alitas y Pollo", slug: "alitas", emoji: "🍗", position: 4,
		products: []seedProduct{
			{"Alitas BBQ", "8 piezas con salsa barbecue.", 18000, "https://images.unsplash.com/photo-1567620832903-0fc676de3866?auto=format&fit=crop&q=80&w=400", false},
			{"Nuggets de Pollo", "10 unidades crujientes con salsa.", 15000, "https://images.unsplash.com/photo-1562967914-608f82629710?auto=format&fit=crop&q=80&w=400", false},
		},
	},
	{
		name: "Combos", slug: "combos", emoji: "🎯", position: 5,
		products: []seedProduct{
			{"Combo Familiar", "2 hamburguesas + papas + 2 bebidas.", 38000, "https://images.unsplash.com/photo-1572802419224-296b0aeee0d9?auto=format&fit=crop&q=80&w=400", true},
		},
	},
	{
		name: "Bebidas", slug: "bebidas", emoji: "🥤", position: 6,
		products: []seedProduct{
			{"Gaseosa 400ml", "Coca-Cola, Pepsi o Sprite.", 4000, "https://images.unsplash.com/photo-1554866585-cd94860890b7?auto=format&fit=crop&q=80&w=400", false},
			{"Limonada Natural", "Limonada fresca 500ml.", 5000, "https://images.unsplash.com/photo-1621263764928-df1444c5e859?auto=format&fit=crop&q=80&w=400", false},
		},
	},
	{
		name: "Postres", slug: "postres", emoji: "🍰", position: 7,
		products: []seedProduct{
			{"Brownie con Helado", "Brownie de chocolate y helado de vainilla.", 10000, "https://images.unsplash.com/photo-1564355808539-22fda35bed7e?auto=format&fit=crop&q=80&w=400", false},
		},
	},
	{
		name: "Opciones Saludables", slug: "saludables", emoji: "🥗", position: 8,
		products: []seedProduct{
			{"Ensalada César", "Lechuga, pollo, parmesano y aderezo césar.", 16000, "https://images.unsplash.com/photo-1546793665-c74683f339c1?auto=format&fit=crop&q=80&w=400", false},
		},
	},
}

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	requireResource(ctx, logg, "database", err)
	defer dbClient.Close()

	created, err := loadCatalog(ctx, dbClient.DB())
	if err != nil {
		logg.Error(ctx, "failed to load initial catalog", err)
		os.Exit(1)
	}

	logg.Info(logg.WithFields(ctx, map[string]any{"products": created}), "initial catalog loaded")
}

// loadCatalog upserts the starter categories and products. Categories are
// keyed by slug and products by (category, name), so re-running it is safe.
func loadCatalog(ctx context.Context, gdb *gorm.DB) (int, error) {
	created := 0
	err := gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, sc := range catalog {
			cat := models.Category{
				ID:       uuid.New(),
				Name:     sc.name,
				Slug:     sc.slug,
				Emoji:    sc.emoji,
				Position: sc.position,
				IsActive: true,
			}
			if err := tx.Where(models.Category{Slug: sc.slug}).
				Attrs(cat).
				FirstOrCreate(&cat).Error; err != nil {
				return fmt.Errorf("upsert category %q: %w", sc.slug, err)
			}
			for i, sp := range sc.products {
				prod := models.Product{
					ID:          uuid.New(),
					CategoryID:  cat.ID,
					Name:        sp.name,
					Description: sp.description,
					Price:       decimal.NewFromInt(sp.price),
					ImageURL:    sp.imageURL,
					IsPromo:     sp.isPromo,
					IsActive:    true,
					Position:    i + 1,
				}
				res := tx.Where(models.Product{CategoryID: cat.ID, Name: sp.name}).
					Attrs(prod).
					FirstOrCreate(&prod)
				if res.Error != nil {
					return fmt.Errorf("upsert product %q: %w", sp.name, res.Error)
				}
				if res.RowsAffected > 0 {
					created++
				}
			}
		}
		return nil
	})
	return created, err
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
