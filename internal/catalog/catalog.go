// Package catalog holds the in-memory bond catalog. The catalog is
// read-mostly: it is seeded at startup and only changes through
// administrative create/update/delete operations. It is safe for
// concurrent use.
package catalog

import (
	"sync"

	apperrors "bondledger/internal/errors"
	"bondledger/internal/models"
)

// Catalog maps bond ids to bond terms while preserving insertion order
// for listing. Removing a bond does not cascade to recorded investments;
// readers of the ledger handle orphaned bond references defensively.
type Catalog struct {
	mu    sync.RWMutex
	bonds map[uint]models.Bond
	order []uint
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{bonds: make(map[uint]models.Bond)}
}

// Add inserts or overwrites the bond at bond.ID. Last write wins; an
// overwrite keeps the bond's original position in the listing order.
func (c *Catalog) Add(bond models.Bond) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.bonds[bond.ID]; !exists {
		c.order = append(c.order, bond.ID)
	}
	c.bonds[bond.ID] = bond
}

// Get returns the bond with the given id.
func (c *Catalog) Get(id uint) (models.Bond, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	bond, ok := c.bonds[id]
	if !ok {
		return models.Bond{}, apperrors.ErrBondNotFound
	}
	return bond, nil
}

// All returns every bond in insertion order.
func (c *Catalog) All() []models.Bond {
	c.mu.RLock()
	defer c.mu.RUnlock()

	bonds := make([]models.Bond, 0, len(c.order))
	for _, id := range c.order {
		bonds = append(bonds, c.bonds[id])
	}
	return bonds
}

// Remove deletes the bond with the given id. Existing investments that
// reference the bond are left untouched.
func (c *Catalog) Remove(id uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.bonds[id]; !ok {
		return apperrors.ErrBondNotFound
	}
	delete(c.bonds, id)
	for i, oid := range c.order {
		if oid == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

// Update applies the non-nil fields of patch to the bond with the given id
// and returns the updated bond. Absent fields leave the bond untouched.
func (c *Catalog) Update(id uint, patch models.BondPatch) (models.Bond, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	bond, ok := c.bonds[id]
	if !ok {
		return models.Bond{}, apperrors.ErrBondNotFound
	}

	if patch.Name != nil {
		bond.Name = *patch.Name
	}
	if patch.Issuer != nil {
		bond.Issuer = *patch.Issuer
	}
	if patch.FaceValue != nil {
		bond.FaceValue = *patch.FaceValue
	}
	if patch.CouponRate != nil {
		bond.CouponRate = *patch.CouponRate
	}
	if patch.IssueDate != nil {
		bond.IssueDate = *patch.IssueDate
	}
	if patch.MaturityDate != nil {
		bond.MaturityDate = *patch.MaturityDate
	}
	if patch.Description != nil {
		bond.Description = *patch.Description
	}
	if patch.MinimumInvestment != nil {
		bond.MinimumInvestment = *patch.MinimumInvestment
	}
	if patch.BondTokenAddress != nil {
		bond.BondTokenAddress = *patch.BondTokenAddress
	}

	c.bonds[id] = bond
	return bond, nil
}

// Len returns the number of listed bonds.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.bonds)
}
