package world

// BuildingKind separates private homes from public places.
type BuildingKind string

const (
	KindHome   BuildingKind = "home"
	KindPublic BuildingKind = "public"
)

// Furniture is presentation-only layout inside a building.
type Furniture struct {
	Kind string
	Rect Rect
}

// Building is a static map fixture. Its rooms are the main rectangle plus every wing.
type Building struct {
	ID        string
	Name      string
	Kind      BuildingKind
	Rect      Rect
	Wings     []Rect
	Furniture []Furniture
}

// Rooms returns the walkable rectangles of the building, main rectangle first.
func (b Building) Rooms() []Rect {
	rooms := make([]Rect, 0, 1+len(b.Wings))
	rooms = append(rooms, b.Rect)
	return append(rooms, b.Wings...)
}

// Contains reports whether p is inside any room of the building.
func (b Building) Contains(p Point) bool {
	for _, r := range b.Rooms() {
		if r.Contains(p) {
			return true
		}
	}
	return false
}

// DefaultCatalog returns the built-in village layout for a 1280x800 map.
func DefaultCatalog() []Building {
	return []Building{
		{
			ID: "house_mira", Name: "Mira's Cottage", Kind: KindHome,
			Rect:  Rect{X: 80, Y: 80, W: 200, H: 150},
			Wings: []Rect{{X: 280, Y: 110, W: 80, H: 100}},
			Furniture: []Furniture{
				{Kind: "bed", Rect: Rect{X: 95, Y: 95, W: 40, H: 60}},
				{Kind: "easel", Rect: Rect{X: 300, Y: 130, W: 30, H: 30}},
			},
		},
		{
			ID: "house_theo", Name: "Theo's Workshop", Kind: KindHome,
			Rect: Rect{X: 480, Y: 70, W: 200, H: 150},
			Furniture: []Furniture{
				{Kind: "bed", Rect: Rect{X: 495, Y: 85, W: 40, H: 60}},
				{Kind: "workbench", Rect: Rect{X: 590, Y: 170, W: 70, H: 30}},
			},
		},
		{
			ID: "house_juno", Name: "Juno's Loft", Kind: KindHome,
			Rect:  Rect{X: 880, Y: 80, W: 220, H: 160},
			Wings: []Rect{{X: 1100, Y: 120, W: 90, H: 100}},
			Furniture: []Furniture{
				{Kind: "bed", Rect: Rect{X: 895, Y: 95, W: 40, H: 60}},
				{Kind: "bookshelf", Rect: Rect{X: 1110, Y: 130, W: 70, H: 20}},
			},
		},
		{
			ID: "house_ravi", Name: "Ravi's Kitchen House", Kind: KindHome,
			Rect: Rect{X: 80, Y: 560, W: 210, H: 160},
			Furniture: []Furniture{
				{Kind: "bed", Rect: Rect{X: 95, Y: 575, W: 40, H: 60}},
				{Kind: "stove", Rect: Rect{X: 220, Y: 660, W: 50, H: 40}},
			},
		},
		{
			ID: "house_lena", Name: "Lena's Greenhouse", Kind: KindHome,
			Rect: Rect{X: 980, Y: 560, W: 210, H: 160},
			Furniture: []Furniture{
				{Kind: "bed", Rect: Rect{X: 995, Y: 575, W: 40, H: 60}},
				{Kind: "planter", Rect: Rect{X: 1080, Y: 670, W: 90, H: 30}},
			},
		},
		{
			ID: "cafe", Name: "Corner Cafe", Kind: KindPublic,
			Rect:  Rect{X: 400, Y: 330, W: 200, H: 140},
			Wings: []Rect{{X: 600, Y: 355, W: 90, H: 90}},
			Furniture: []Furniture{
				{Kind: "table", Rect: Rect{X: 440, Y: 370, W: 40, H: 40}},
				{Kind: "table", Rect: Rect{X: 520, Y: 370, W: 40, H: 40}},
				{Kind: "counter", Rect: Rect{X: 420, Y: 440, W: 160, H: 15}},
			},
		},
		{
			ID: "library", Name: "Village Library", Kind: KindPublic,
			Rect: Rect{X: 760, Y: 330, W: 180, H: 150},
			Furniture: []Furniture{
				{Kind: "bookshelf", Rect: Rect{X: 775, Y: 345, W: 150, H: 20}},
				{Kind: "desk", Rect: Rect{X: 820, Y: 410, W: 60, H: 30}},
			},
		},
		{
			ID: "park", Name: "Willow Park", Kind: KindPublic,
			Rect: Rect{X: 450, Y: 590, W: 300, H: 160},
			Furniture: []Furniture{
				{Kind: "bench", Rect: Rect{X: 500, Y: 640, W: 60, H: 15}},
				{Kind: "fountain", Rect: Rect{X: 580, Y: 650, W: 40, H: 40}},
			},
		},
	}
}
