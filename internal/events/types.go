package events

// ProductSaved is published after a successful admin save (insert or
// update), once the record and its image list are authoritative.
type ProductSaved struct {
	ProductID string `json:"product_id"`
}

// ProductDeleted is published after a product row and its managed blobs
// have been removed.
type ProductDeleted struct {
	ProductID string `json:"product_id"`
}

// CatalogReloaded is published when the product set changed wholesale and
// derived state (facets, cached lists) must be recomputed.
type CatalogReloaded struct {
	Count int `json:"count"`
}
