package product

// seedEntries is the built-in sneaker catalog. Some SKUs appear twice with
// differing descriptions; those later entries supersede the earlier ones on
// lookup, as newer catalog versions.
var seedEntries = []struct {
	sku         string
	description string
}{
	{"Nike Air Force Ones", "The Nike Air Force Ones combines timeless style with modern comfort, featuring premium materials and cutting-edge technology for unmatched performance."},
	{"Adidas UltraBoost", "The Adidas UltraBoost combines timeless style with modern comfort, featuring premium materials and cutting-edge technology for unmatched performance."},
	{"Reebok Classic Leather White", "The Reebok Classic Leather combines timeless style with modern comfort, featuring premium materials and cutting-edge technology for unmatched performance."},
	{"Puma Suede Classic", "The Puma Suede Classic combines timeless style with modern comfort, featuring premium materials and cutting-edge technology for unmatched performance."},
	{"New Balance 574", "The New Balance 574 combines timeless style with modern comfort, featuring premium materials and cutting-edge technology for unmatched performance."},
	{"Vans Old Skool", "The Vans Old Skool combines timeless style with modern comfort, featuring premium materials and cutting-edge technology for unmatched performance."},
	{"Converse Chuck Taylor All Star", "The Converse Chuck Taylor All Star combines timeless style with modern comfort, featuring premium materials and cutting-edge technology for unmatched performance."},
	{"Under Armour HOVR Sonic", "The Under Armour HOVR Sonic combines timeless style with modern comfort, featuring premium materials and cutting-edge technology for unmatched performance."},
	{"Jordan Air Jordan 1", "The Jordan Air Jordan 1 combines timeless style with modern comfort, featuring premium materials and cutting-edge technology for unmatched performance."},
	{"Asics GEL-Kayano", "The Asics GEL-Kayano combines timeless style with modern comfort, featuring premium materials and cutting-edge technology for unmatched performance."},
	{"Nike Air Force Ones", "A second iteration of the classic, the Nike Air Force Ones Model 11 is redesigned for the modern athlete, offering enhanced cushioning and durability."},
	{"Adidas UltraBoost", "Adidas UltraBoost Model 12 brings you closer to the ground for a more responsive feel, ideal for runners seeking a blend of support and speed."},
	{"Reebok Classic Leather Black", "Reebok's Classic Leather Model 13 is the epitome of retro chic, offering unparalleled comfort and a sleek design for everyday wear."},
	{"Puma Suede Classic", "The Puma Suede Classic Model 14 updates the iconic design with advanced materials for better wearability and style."},
	{"New Balance 574", "This latest version of the New Balance 574, Model 15, combines heritage styling with modern technology for an improved fit and function."},
	{"Vans New Skool", "Vans New Skool Model 16 reintroduces the classic skate shoe with updated features for enhanced performance and comfort."},
	{"Converse Chuck Taylor All Star", "Model 17 of the Converse Chuck Taylor All Star elevates the iconic silhouette with premium materials and an improved insole for all-day comfort."},
	{"Under Armour HOVR Sonic", "The latest Under Armour HOVR Sonic, Model 18, offers an unparalleled ride, blending the perfect balance of cushioning and energy return."},
	{"Jordan Air Jordan 2", "Jordan Air Jordan 2 Model 19 continues the legacy, integrating classic design lines with modern technology for a timeless look and feel."},
	{"Asics GEL-Tres", "Asics GEL-Tres Model 20 is the latest in the series, offering improved stability and support for overpronators."},
}

// DefaultCatalog builds the built-in product catalog.
func DefaultCatalog() (*Catalog, error) {
	items := make([]Item, 0, len(seedEntries))
	for _, e := range seedEntries {
		item, err := NewItem(e.sku, e.sku, e.description)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return NewCatalog(items)
}
