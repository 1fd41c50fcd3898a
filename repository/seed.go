package repository

import (
	"context"
	"fmt"

	"storefront/models"
)

// PasswordHasher turns a plaintext password into its stored form.
type PasswordHasher func(plain string) (string, error)

type seedProduct struct {
	name        string
	description string
	price       string
	salePrice   string
	category    string
	subCategory string
	image       string
	sizes       []string
	colors      []string
	material    string
	isNew       bool
	isFeatured  bool
}

func (p seedProduct) model() *models.Product {
	product := &models.Product{
		Name:        p.name,
		Description: p.description,
		Price:       models.Price(p.price),
		Category:    p.category,
		SubCategory: p.subCategory,
		ImageURLs:   []string{p.image},
		Sizes:       p.sizes,
		Colors:      p.colors,
		InStock:     true,
		IsNew:       p.isNew,
		IsFeatured:  p.isFeatured,
	}
	if p.salePrice != "" {
		product.SalePrice = models.OptionalPrice(p.salePrice)
	}
	if p.material != "" {
		material := p.material
		product.Material = &material
	}
	return product
}

// Seed loads the demo accounts, catalog and reviews into an empty store. It
// reports false without writing anything when the store already has users.
func Seed(ctx context.Context, store Store, hash PasswordHasher) (bool, error) {
	existing, err := store.ListUsers(ctx)
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}

	err = store.RunInTx(ctx, func(tx Store) error {
		password, err := hash("password123")
		if err != nil {
			return fmt.Errorf("hash seed password: %w", err)
		}

		if _, err := tx.CreateUser(ctx, &models.User{
			Username:  "admin",
			Password:  password,
			Email:     "admin@fashionhub.com",
			FirstName: "Admin",
			LastName:  "User",
			IsAdmin:   true,
		}); err != nil {
			return err
		}
		customer, err := tx.CreateUser(ctx, &models.User{
			Username:  "user",
			Password:  password,
			Email:     "user@example.com",
			FirstName: "Regular",
			LastName:  "User",
		})
		if err != nil {
			return err
		}

		byName := make(map[string]uint, len(seedCatalog))
		for _, sp := range seedCatalog {
			p, err := tx.CreateProduct(ctx, sp.model())
			if err != nil {
				return err
			}
			byName[p.Name] = p.ID
		}

		for _, r := range []struct {
			product string
			rating  int
			comment string
		}{
			{"Casual Summer Dress", 5, "I absolutely love this dress! The fabric feels premium and the fit is perfect."},
			{"Classic Denim Jacket", 4, "Great jacket, fits well and looks good with almost everything."},
		} {
			comment := r.comment
			if _, err := tx.CreateReview(ctx, &models.Review{
				ProductID: byName[r.product],
				UserID:    customer.ID,
				Rating:    r.rating,
				Comment:   &comment,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

var seedCatalog = []seedProduct{
	{
		name:        "Casual Summer Dress",
		description: "A versatile and comfortable summer dress perfect for any casual occasion. Made with lightweight, breathable fabric.",
		price:       "49.99",
		category:    "womens",
		subCategory: "dresses",
		image:       "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?ixlib=rb-1.2.1&auto=format&fit=crop&w=600&q=80",
		sizes:       []string{"XS", "S", "M", "L", "XL"},
		colors:      []string{"Blue", "Red", "Green", "Yellow"},
		material:    "100% Cotton",
		isNew:       true,
		isFeatured:  true,
	},
	{
		name:        "Floral Maxi Dress",
		description: "Elegant floral print maxi dress with adjustable straps. Perfect for spring and summer events.",
		price:       "79.99",
		category:    "womens",
		subCategory: "dresses",
		image:       "https://images.unsplash.com/photo-1572804013309-59a88b7e92f1?ixlib=rb-1.2.1&auto=format&fit=crop&w=600&q=80",
		sizes:       []string{"XS", "S", "M", "L", "XL"},
		colors:      []string{"Blue", "Pink", "White"},
		material:    "Polyester Blend",
		isNew:       true,
	},
	{
		name:        "Silk Blouse",
		description: "Elegant silk blouse with a relaxed fit. Versatile for both professional and casual settings.",
		price:       "59.99",
		category:    "womens",
		subCategory: "tops",
		image:       "https://images.unsplash.com/photo-1594223274512-ad4803739b7c?ixlib=rb-1.2.1&auto=format&fit=crop&w=600&q=80",
		sizes:       []string{"S", "M", "L"},
		colors:      []string{"White", "Black", "Navy"},
		material:    "100% Silk",
		isNew:       true,
	},
	{
		name:        "Striped Cotton Top",
		description: "Casual striped cotton top with short sleeves. Great for everyday wear with a comfortable fit.",
		price:       "34.99",
		salePrice:   "29.99",
		category:    "womens",
		subCategory: "tops",
		image:       "https://images.unsplash.com/photo-1503185912284-5271ff81b9a8?ixlib=rb-1.2.1&auto=format&fit=crop&w=600&q=80",
		sizes:       []string{"XS", "S", "M", "L", "XL"},
		colors:      []string{"Blue/White", "Black/White", "Red/White"},
		material:    "100% Cotton",
	},
	{
		name:        "High-Waisted Skinny Jeans",
		description: "Flattering high-waisted skinny jeans with a bit of stretch for comfort. A wardrobe essential.",
		price:       "69.99",
		category:    "womens",
		subCategory: "jeans",
		image:       "https://images.unsplash.com/photo-1541099649105-f69ad21f3246?ixlib=rb-1.2.1&auto=format&fit=crop&w=600&q=80",
		sizes:       []string{"24", "25", "26", "27", "28", "29", "30", "31", "32"},
		colors:      []string{"Dark Blue", "Black", "Light Blue"},
		material:    "98% Cotton, 2% Elastane",
		isFeatured:  true,
	},
	{
		name:        "Classic Denim Jacket",
		description: "A timeless denim jacket that completes any outfit. Perfect for layering in any season.",
		price:       "89.99",
		category:    "mens",
		subCategory: "shirts",
		image:       "https://images.unsplash.com/photo-1584273143981-41c073dfe8f8?ixlib=rb-1.2.1&auto=format&fit=crop&w=600&q=80",
		sizes:       []string{"S", "M", "L", "XL"},
		colors:      []string{"Blue", "Black"},
		material:    "Denim",
		isFeatured:  true,
	},
	{
		name:        "Oxford Button-Down Shirt",
		description: "Classic oxford button-down shirt made with premium cotton. A versatile addition to any wardrobe.",
		price:       "59.99",
		category:    "mens",
		subCategory: "shirts",
		image:       "https://images.unsplash.com/photo-1598033129183-c4f50c736f10?ixlib=rb-1.2.1&auto=format&fit=crop&w=600&q=80",
		sizes:       []string{"S", "M", "L", "XL", "XXL"},
		colors:      []string{"White", "Blue", "Pink", "Gray"},
		material:    "100% Cotton",
	},
	{
		name:        "Graphic Print T-Shirt",
		description: "Comfortable cotton t-shirt featuring a unique graphic design. Perfect for casual everyday wear.",
		price:       "29.99",
		category:    "mens",
		subCategory: "t-shirts",
		image:       "https://images.unsplash.com/photo-1576566588028-4147f3842f27?ixlib=rb-1.2.1&auto=format&fit=crop&w=600&q=80",
		sizes:       []string{"S", "M", "L", "XL", "XXL"},
		colors:      []string{"White", "Black", "Gray"},
		material:    "100% Cotton",
		isNew:       true,
	},
	{
		name:        "Premium Cotton T-Shirt",
		description: "Essential crew neck t-shirt made from premium cotton for everyday comfort and style.",
		price:       "24.99",
		salePrice:   "19.99",
		category:    "mens",
		subCategory: "t-shirts",
		image:       "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?ixlib=rb-1.2.1&auto=format&fit=crop&w=600&q=80",
		sizes:       []string{"S", "M", "L", "XL", "XXL"},
		colors:      []string{"White", "Black", "Navy", "Gray", "Green"},
		material:    "100% Organic Cotton",
	},
	{
		name:        "Slim Fit Chino Pants",
		description: "Versatile slim fit chino pants that transition effortlessly from work to weekend.",
		price:       "59.99",
		category:    "mens",
		subCategory: "jeans",
		image:       "https://images.unsplash.com/photo-1517445312882-bc9910d042b3?ixlib=rb-1.2.1&auto=format&fit=crop&w=600&q=80",
		sizes:       []string{"28", "30", "32", "34", "36", "38"},
		colors:      []string{"Khaki", "Navy", "Black", "Olive"},
		material:    "98% Cotton, 2% Elastane",
	},
	{
		name:        "Classic Straight Jeans",
		description: "Timeless straight-leg jeans with a comfortable regular fit. Made from high-quality denim.",
		price:       "69.99",
		category:    "mens",
		subCategory: "jeans",
		image:       "https://images.unsplash.com/photo-1555689502-c4b22d76c56f?ixlib=rb-1.2.1&auto=format&fit=crop&w=600&q=80",
		sizes:       []string{"28", "30", "32", "34", "36", "38", "40"},
		colors:      []string{"Dark Blue", "Medium Blue", "Black"},
		material:    "100% Cotton Denim",
		isFeatured:  true,
	},
	{
		name:        "Leather Ankle Boots",
		description: "Stylish and comfortable ankle boots made with genuine leather. Perfect for any occasion.",
		price:       "129.99",
		salePrice:   "99.99",
		category:    "shoes",
		subCategory: "boots",
		image:       "https://images.unsplash.com/photo-1527719327859-c6ce80353573?ixlib=rb-1.2.1&auto=format&fit=crop&w=600&q=80",
		sizes:       []string{"36", "37", "38", "39", "40", "41"},
		colors:      []string{"Black", "Brown"},
		material:    "Leather",
		isFeatured:  true,
	},
	{
		name:        "Canvas Sneakers",
		description: "Classic canvas sneakers with rubber soles. Lightweight and comfortable for everyday wear.",
		price:       "49.99",
		category:    "shoes",
		subCategory: "sneakers",
		image:       "https://images.unsplash.com/photo-1603808033192-082d6919d3e1?ixlib=rb-1.2.1&auto=format&fit=crop&w=600&q=80",
		sizes:       []string{"36", "37", "38", "39", "40", "41", "42", "43", "44", "45"},
		colors:      []string{"White", "Black", "Navy", "Red"},
		material:    "Canvas and Rubber",
		isNew:       true,
	},
	{
		name:        "Athletic Running Shoes",
		description: "Performance running shoes with responsive cushioning and breathable mesh upper.",
		price:       "89.99",
		category:    "shoes",
		subCategory: "sneakers",
		image:       "https://images.unsplash.com/photo-1542291026-7eec264c27ff?ixlib=rb-1.2.1&auto=format&fit=crop&w=600&q=80",
		sizes:       []string{"38", "39", "40", "41", "42", "43", "44", "45"},
		colors:      []string{"Black/White", "Blue/Gray", "All Black"},
		material:    "Synthetic and Mesh",
		isNew:       true,
		isFeatured:  true,
	},
	{
		name:        "Strappy Heeled Sandals",
		description: "Elegant strappy sandals with a comfortable mid-heel. Perfect for dressing up any outfit.",
		price:       "79.99",
		salePrice:   "59.99",
		category:    "shoes",
		subCategory: "sandals",
		image:       "https://images.unsplash.com/photo-1543163521-1bf539c55dd2?ixlib=rb-1.2.1&auto=format&fit=crop&w=600&q=80",
		sizes:       []string{"35", "36", "37", "38", "39", "40", "41"},
		colors:      []string{"Black", "Nude", "Silver", "Gold"},
		material:    "Synthetic Leather",
	},
	{
		name:        "Cashmere Scarf",
		description: "Luxurious cashmere scarf to keep you warm and stylish during colder months.",
		price:       "39.99",
		category:    "accessories",
		subCategory: "scarves",
		image:       "https://images.unsplash.com/photo-1509946458702-4378df1e2560?ixlib=rb-1.2.1&auto=format&fit=crop&w=600&q=80",
		colors:      []string{"Gray", "Navy", "Burgundy"},
		material:    "Cashmere",
		isFeatured:  true,
	},
	{
		name:        "Leather Tote Bag",
		description: "Spacious leather tote bag with internal pockets. Perfect for work, travel, or everyday use.",
		price:       "119.99",
		category:    "accessories",
		subCategory: "bags",
		image:       "https://images.unsplash.com/photo-1548863227-3af567fc3b27?ixlib=rb-1.2.1&auto=format&fit=crop&w=600&q=80",
		colors:      []string{"Black", "Brown", "Tan"},
		material:    "Genuine Leather",
		isNew:       true,
		isFeatured:  true,
	},
	{
		name:        "Minimalist Watch",
		description: "Elegant minimalist watch with a premium leather strap. A timeless accessory for any outfit.",
		price:       "99.99",
		category:    "accessories",
		subCategory: "jewelry",
		image:       "https://images.unsplash.com/photo-1524805444758-089113d48a6d?ixlib=rb-1.2.1&auto=format&fit=crop&w=600&q=80",
		colors:      []string{"Black/Silver", "Brown/Gold", "Black/Gold"},
		material:    "Stainless Steel, Leather",
	},
	{
		name:        "Wide Brim Straw Hat",
		description: "Classic wide brim straw hat, perfect for sun protection with a touch of style.",
		price:       "34.99",
		category:    "accessories",
		subCategory: "hats",
		image:       "https://images.unsplash.com/photo-1565339119810-a536680fd7e1?ixlib=rb-1.2.1&auto=format&fit=crop&w=600&q=80",
		colors:      []string{"Natural", "Black", "White"},
		material:    "Straw",
		isNew:       true,
	},
}
