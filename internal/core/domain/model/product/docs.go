// Package product provides static reference data for sellable items.
//
// The package includes:
//   - Item: immutable product reference data identified by SKU
//   - Catalog: read-only SKU lookup where the latest registered entry wins
//
// Catalog data is pure reference material: lookups have no side effects and
// items are never mutated after registration.
package product
