package domain

// Product is a catalog entry. The slug is the external lookup key; the
// numeric id is assigned by the store on insert and both must stay unique.
type Product struct {
	ID    int64  `json:"id"`
	Slug  string `json:"slug"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// ProductRequest is the create/update payload. Price is a pointer so a
// zero price still satisfies the required check.
type ProductRequest struct {
	Slug  string `json:"slug" validate:"required"`
	Name  string `json:"name" validate:"required"`
	Price *int64 `json:"price" validate:"required"`
}
