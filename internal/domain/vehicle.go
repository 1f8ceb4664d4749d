package domain

// DefaultVehicle is the category used when a requested category is unknown.
const DefaultVehicle = "car"

// Physical consumption parameters for one vehicle category.
//
// DragFactor is carried for a future aerodynamic term; the current
// efficiency curve does not read it.
type VehicleProfile struct {
	Category        string
	BaseConsumption float64 // liters per 100 km
	OptimalSpeed    float64 // km/h at which consumption is minimal
	DragFactor      float64
}

var vehicleOrder = []string{"motorbike", "car", "truck"}

var vehicleProfiles = map[string]VehicleProfile{
	"motorbike": {Category: "motorbike", BaseConsumption: 2.5, OptimalSpeed: 50, DragFactor: 0.05},
	"car":       {Category: "car", BaseConsumption: 7.0, OptimalSpeed: 80, DragFactor: 0.10},
	"truck":     {Category: "truck", BaseConsumption: 15.0, OptimalSpeed: 70, DragFactor: 0.20},
}

// ResolveVehicle returns the profile registered for category.
// Unknown categories, including the empty string, resolve to the car profile.
func ResolveVehicle(category string) VehicleProfile {
	if p, ok := vehicleProfiles[category]; ok {
		return p
	}
	return vehicleProfiles[DefaultVehicle]
}

// IsKnownVehicle reports whether category has its own profile.
func IsKnownVehicle(category string) bool {
	_, ok := vehicleProfiles[category]
	return ok
}

// VehicleCategories lists the registered categories from lightest to heaviest.
func VehicleCategories() []string {
	out := make([]string, len(vehicleOrder))
	copy(out, vehicleOrder)
	return out
}
