package dashboard

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"pitchpro/db"
	"pitchpro/models"
	"pitchpro/stats"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Snapshot is the full dashboard state for one organization. It is
// rebuilt in whole on every change; clients never receive deltas.
type Snapshot struct {
	Organization models.Organization  `json:"organization"`
	Pitches      []models.Pitch       `json:"pitches"`
	Stats        []models.StatsRecord `json:"stats"`
	LoadedAt     time.Time            `json:"loadedAt"`

	// Error carries the last reload failure; the rest of the snapshot is
	// the last successfully loaded state.
	Error string `json:"error,omitempty"`
}

// Manager owns at most one live stream at a time. Selecting a new
// organization tears the previous stream down before the next one starts,
// so two streams never write snapshots concurrently.
type Manager struct {
	mu      sync.Mutex
	current *stream

	snapMu    sync.RWMutex
	snapshots map[string]*Snapshot
}

var DefaultManager = NewManager()

func NewManager() *Manager {
	return &Manager{snapshots: make(map[string]*Snapshot)}
}

type stream struct {
	orgID  string
	cancel context.CancelFunc
	done   chan struct{}
}

// Select switches the live stream to the given organization. The previous
// stream is cancelled and fully drained first.
func (m *Manager) Select(orgID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current != nil {
		if m.current.orgID == orgID {
			return nil
		}
		m.current.cancel()
		<-m.current.done
		m.current = nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &stream{orgID: orgID, cancel: cancel, done: make(chan struct{})}

	if err := m.reload(ctx, orgID); err != nil {
		cancel()
		return err
	}

	go m.run(ctx, s)
	m.current = s
	return nil
}

// Stop tears down the live stream, if any.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current != nil {
		m.current.cancel()
		<-m.current.done
		m.current = nil
	}
}

// Snapshot returns the last loaded snapshot for the organization, or nil.
func (m *Manager) Snapshot(orgID string) *Snapshot {
	m.snapMu.RLock()
	defer m.snapMu.RUnlock()
	return m.snapshots[orgID]
}

// SnapshotJSON returns the last snapshot serialized, or nil when absent.
func (m *Manager) SnapshotJSON(orgID string) []byte {
	snap := m.Snapshot(orgID)
	if snap == nil {
		return nil
	}
	payload, err := json.Marshal(snap)
	if err != nil {
		return nil
	}
	return payload
}

func (m *Manager) run(ctx context.Context, s *stream) {
	defer close(s.done)

	events := make(chan struct{}, 1)
	var wg sync.WaitGroup

	watch := func(col *mongo.Collection, filter bson.M) {
		defer wg.Done()
		pipeline := mongo.Pipeline{bson.D{{Key: "$match", Value: filter}}}
		cs, err := col.Watch(ctx, pipeline,
			options.ChangeStream().SetFullDocument(options.UpdateLookup))
		if err != nil {
			log.Printf("[Dashboard] change stream on %s unavailable: %v", col.Name(), err)
			return
		}
		defer cs.Close(ctx)
		for cs.Next(ctx) {
			select {
			case events <- struct{}{}:
			default:
			}
		}
	}

	wg.Add(3)
	go watch(db.OrganizationsCollection, bson.M{"fullDocument._id": s.orgID})
	go watch(db.PitchesCollection, bson.M{"fullDocument.organization_id": s.orgID})
	go watch(db.OrgStatsCollection, bson.M{"fullDocument.organization_id": s.orgID})

	for {
		select {
		case <-ctx.Done():
			wg.Wait()
			return
		case <-events:
			if err := m.reload(ctx, s.orgID); err != nil {
				log.Printf("[Dashboard] snapshot reload for %s failed: %v", s.orgID, err)
				m.markError(s.orgID, err)
			}
		}
	}
}

// markError stamps the failure onto the stale snapshot and pushes it so
// subscribers see the degraded state instead of silently stale data.
func (m *Manager) markError(orgID string, err error) {
	m.snapMu.Lock()
	snap := m.snapshots[orgID]
	if snap == nil {
		m.snapMu.Unlock()
		return
	}
	stale := *snap
	stale.Error = err.Error()
	m.snapshots[orgID] = &stale
	m.snapMu.Unlock()

	if payload, merr := json.Marshal(&stale); merr == nil {
		broadcast(orgID, payload)
	}
}

// reload re-queries all three levels and replaces the snapshot wholesale.
func (m *Manager) reload(ctx context.Context, orgID string) error {
	qctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var org models.Organization
	if err := db.OrganizationsCollection.FindOne(qctx, bson.M{"_id": orgID}).Decode(&org); err != nil {
		return err
	}

	pitchCur, err := db.PitchesCollection.Find(qctx, bson.M{"organization_id": orgID})
	if err != nil {
		return err
	}
	var pitches []models.Pitch
	if err := pitchCur.All(qctx, &pitches); err != nil {
		return err
	}

	statsCur, err := db.OrgStatsCollection.Find(qctx,
		bson.M{"organization_id": orgID},
		options.Find().SetSort(bson.M{"start_date": -1}))
	if err != nil {
		return err
	}
	var rawStats []models.StatsDoc
	if err := statsCur.All(qctx, &rawStats); err != nil {
		return err
	}

	records := make([]models.StatsRecord, 0, len(rawStats))
	for _, doc := range rawStats {
		records = append(records, stats.NormalizeStatsDoc(doc))
	}

	snap := &Snapshot{
		Organization: org,
		Pitches:      pitches,
		Stats:        records,
		LoadedAt:     time.Now(),
	}

	m.snapMu.Lock()
	m.snapshots[orgID] = snap
	m.snapMu.Unlock()

	if payload, err := json.Marshal(snap); err == nil {
		broadcast(orgID, payload)
	}
	return nil
}
