package cache

import (
	"context"
	"log"

	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/models"
)

const approvedBusinessEntity = "approved_business"

// SnapshotCache keeps approved business snapshots in Redis, keyed by owner
// role and id. Misses and write failures never surface as errors; the store
// remains authoritative.
type SnapshotCache struct {
	svc *CacheService
}

func NewSnapshotCache(svc *CacheService) *SnapshotCache {
	return &SnapshotCache{svc: svc}
}

func snapshotKey(role models.RoleType, ownerID string) string {
	return GenerateKey(approvedBusinessEntity, string(role), ownerID)
}

func (c *SnapshotCache) Get(ctx context.Context, role models.RoleType, ownerID string) (*models.ApprovedBusiness, bool) {
	var snapshot models.ApprovedBusiness
	found, err := c.svc.Get(ctx, snapshotKey(role, ownerID), &snapshot)
	if err != nil {
		log.Printf("SnapshotCache: read error for owner %s: %v", ownerID, err)
		return nil, false
	}
	if !found {
		return nil, false
	}
	return &snapshot, true
}

// Set overwrites the cached snapshot. Decisions call it after commit with
// the snapshot they wrote.
func (c *SnapshotCache) Set(ctx context.Context, role models.RoleType, snapshot *models.ApprovedBusiness) {
	if err := c.svc.Set(ctx, snapshotKey(role, snapshot.OwnerID), snapshot); err != nil {
		log.Printf("SnapshotCache: write error for owner %s: %v", snapshot.OwnerID, err)
	}
}

// Fill caches a snapshot read from the store unless one is already cached,
// so a slow reader cannot replace a newer snapshot written by a decision.
func (c *SnapshotCache) Fill(ctx context.Context, role models.RoleType, snapshot *models.ApprovedBusiness) {
	if _, err := c.svc.SetNX(ctx, snapshotKey(role, snapshot.OwnerID), snapshot); err != nil {
		log.Printf("SnapshotCache: fill error for owner %s: %v", snapshot.OwnerID, err)
	}
}
