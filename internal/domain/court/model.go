package court

// Court is a bookable playing surface.
type Court struct {
	ID     string
	Name   string
	Active bool
}
