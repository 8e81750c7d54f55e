package schema

import (
	"github.com/safar/partsbot/internal/models"
	"github.com/shopspring/decimal"
)

var seedCategories = []models.Category{
	{Name: "Processors", Description: "Central processing units (CPU) for desktops", Icon: "⚡", Slug: "cpu"},
	{Name: "Graphics cards", Description: "Graphics processors (GPU) for gaming and work", Icon: "🎮", Slug: "gpu"},
	{Name: "Motherboards", Description: "System boards for PC builds", Icon: "🖥️", Slug: "motherboards"},
	{Name: "Memory", Description: "RAM modules for extra performance", Icon: "💾", Slug: "ram"},
	{Name: "Storage", Description: "SSD and HDD drives for your data", Icon: "💿", Slug: "storage"},
	{Name: "Power supplies", Description: "Power supply units (PSU) for stable operation", Icon: "🔌", Slug: "psu"},
	{Name: "Cases", Description: "PC cases in every form factor", Icon: "📦", Slug: "cases"},
	{Name: "Cooling", Description: "CPU and case cooling systems", Icon: "❄️", Slug: "cooling"},
	{Name: "Monitors", Description: "Monitors and displays of all sizes", Icon: "🖥️", Slug: "monitors"},
	{Name: "Keyboards", Description: "Mechanical and membrane keyboards", Icon: "⌨️", Slug: "keyboards"},
	{Name: "Mice", Description: "Gaming and office mice", Icon: "🖱️", Slug: "mice"},
	{Name: "Audio", Description: "Headphones, speakers and audio systems", Icon: "🎧", Slug: "audio"},
	{Name: "Networking", Description: "Network cards, routers and equipment", Icon: "🌐", Slug: "network"},
}

func starter(slug, name, description string, price int64, image, specs, brand string, rating float64, stock, popularity int) seedProduct {
	return seedProduct{
		categorySlug: slug,
		product: models.Product{
			Name:          name,
			Description:   description,
			Price:         decimal.NewFromInt(price),
			ImageURL:      image,
			Specs:         specs,
			InStock:       true,
			Rating:        rating,
			Brand:         brand,
			StockQuantity: stock,
			Popularity:    popularity,
		},
	}
}

var seedProducts = []seedProduct{
	starter("cpu", "AMD Ryzen 5 7600X", "6-core processor for gaming and work", 24999,
		"https://example.com/cpu1.jpg",
		"Socket: AM5 | Cores: 6 | Threads: 12 | Clock: 4.7-5.3 GHz | L3 cache: 32 MB | TDP: 105W",
		"AMD", 4.8, 15, 120),
	starter("cpu", "Intel Core i5-13400F", "Processor for office and gaming", 19850,
		"https://example.com/cpu2.jpg",
		"Socket: LGA1700 | Cores: 10 (6P+4E) | Threads: 16 | Clock: 2.5-4.6 GHz | TDP: 65W",
		"Intel", 4.6, 8, 95),
	starter("cpu", "AMD Ryzen 7 7800X3D", "Gaming processor with 3D V-Cache", 37999,
		"https://example.com/cpu3.jpg",
		"Socket: AM5 | Cores: 8 | Threads: 16 | Clock: 4.2-5.0 GHz | L3 cache: 96 MB | TDP: 120W",
		"AMD", 4.9, 5, 75),

	starter("gpu", "ASUS TUF RTX 4060 Ti", "Gaming graphics card for Full HD and 2K", 48990,
		"https://example.com/gpu1.jpg",
		"Memory: 8 GB GDDR6 | Clock: 2310 MHz | Ports: 3xDP, 1xHDMI | Length: 300 mm | Power: 8-pin",
		"ASUS", 4.7, 12, 150),
	starter("gpu", "GIGABYTE RX 7700 XT", "Graphics card for 1440p gaming", 42999,
		"https://example.com/gpu2.jpg",
		"Memory: 12 GB GDDR6 | Clock: 2171 MHz | Ports: 3xDP, 1xHDMI | Length: 320 mm",
		"GIGABYTE", 4.6, 7, 85),

	starter("motherboards", "ASUS ROG STRIX B650-A", "Gaming AM5 motherboard", 21999,
		"https://example.com/mb1.jpg",
		"Socket: AM5 | Form factor: ATX | Memory: DDR5 | M.2 slots: 3 | Wi-Fi: Yes | Bluetooth: 5.2",
		"ASUS", 4.8, 10, 110),
	starter("motherboards", "MSI PRO B760-P", "Motherboard for office builds", 14999,
		"https://example.com/mb2.jpg",
		"Socket: LGA1700 | Form factor: ATX | Memory: DDR4 | M.2 slots: 2 | Wi-Fi: No",
		"MSI", 4.5, 15, 65),

	starter("ram", "Kingston FURY Beast 32GB", "DDR5 memory for gaming systems", 7850,
		"https://example.com/ram1.jpg",
		"Capacity: 32 GB (2x16) | Speed: 6000 MHz | Timings: CL36 | Voltage: 1.35V | RGB: Yes",
		"Kingston", 4.7, 25, 140),
	starter("ram", "Corsair Vengeance 16GB", "Gaming memory with RGB lighting", 5990,
		"https://example.com/ram2.jpg",
		"Capacity: 16 GB (2x8) | Speed: 3600 MHz | Timings: CL18 | Lighting: RGB iCUE",
		"Corsair", 4.6, 30, 125),

	starter("storage", "Samsung 980 Pro 1TB", "PCIe 4.0 NVMe SSD", 9990,
		"https://example.com/ssd1.jpg",
		"Form factor: M.2 2280 | Interface: PCIe 4.0 | Read: 7000 MB/s | Write: 5000 MB/s | TBW: 600",
		"Samsung", 4.9, 20, 180),
	starter("storage", "WD Blue SN580 2TB", "Fast gaming SSD", 12990,
		"https://example.com/ssd2.jpg",
		"Form factor: M.2 2280 | Interface: PCIe 4.0 | Read: 4150 MB/s | TBW: 900",
		"Western Digital", 4.7, 12, 95),

	starter("psu", "be quiet! Pure Power 12 750W", "Powerful and quiet power supply", 10390,
		"https://example.com/psu1.jpg",
		"Power: 750 W | Certificate: 80+ Gold | Modular: Semi-modular | Fan: 120 mm | Warranty: 5 years",
		"be quiet!", 4.8, 8, 70),

	starter("cases", "NZXT H5 Flow", "Case with excellent airflow", 7200,
		"https://example.com/case1.jpg",
		"Form factor: Mid-Tower | Material: Steel, glass | Fans: 2x120 mm | Lighting: No | USB: 2xUSB 3.0",
		"NZXT", 4.6, 10, 85),

	starter("cooling", "DeepCool AK620", "Tower cooler for high-end processors", 5499,
		"https://example.com/cooler1.jpg",
		"Type: Air | TDP: 260 W | Fans: 2x120 mm | Height: 160 mm | Lighting: No | Compatibility: AM5/LGA1700",
		"DeepCool", 4.7, 15, 60),

	starter("monitors", "Samsung Odyssey G5", "Curved gaming monitor", 29990,
		"https://example.com/monitor1.jpg",
		`Diagonal: 27" | Resolution: 2560x1440 | Refresh: 144 Hz | Panel: VA | Curve: 1000R | Response: 1ms`,
		"Samsung", 4.8, 6, 110),

	starter("keyboards", "Logitech G Pro X", "Mechanical TKL gaming keyboard", 11990,
		"https://example.com/kb1.jpg",
		"Type: Mechanical | Switches: GX Brown (hot-swap) | Lighting: RGB | Layout: TKL | Programmable keys: Yes",
		"Logitech", 4.7, 18, 130),

	starter("mice", "Razer DeathAdder V3", "Gaming mouse for professional players", 8990,
		"https://example.com/mouse1.jpg",
		"Type: Wired | DPI: 30000 | Buttons: 8 | Weight: 59 g | Sensor: Focus Pro 30K | Polling rate: 8000 Hz",
		"Razer", 4.8, 22, 145),
}
