package rpc

// ParamsForCreate carries the payload of a create method.
type ParamsForCreate[D any] struct {
	Data D `json:"data" validate:"required"`
}

// ParamsForUpdate carries the target id and the patch of an update method.
type ParamsForUpdate[D any] struct {
	ID   int64 `json:"id" validate:"required"`
	Data D     `json:"data"`
}

// ParamsIded addresses a single entity.
type ParamsIded struct {
	ID int64 `json:"id" validate:"required"`
}
