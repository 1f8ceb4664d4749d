package dto

type VehicleResponse struct {
	Category        string  `json:"category"`
	BaseConsumption float64 `json:"baseConsumption"`
	OptimalSpeed    float64 `json:"optimalSpeed"`
	DragFactor      float64 `json:"dragFactor"`
}

type ListVehiclesResponse struct {
	Vehicles []VehicleResponse `json:"vehicles"`
}
