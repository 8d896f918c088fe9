package mtd

import (
	"encoding/binary"
	"fmt"

	lru "github.com/hashicorp/golang-lru"

	"github.com/zkmtd/zkmtd/internal/zkmtd/config"
	"github.com/zkmtd/zkmtd/internal/zkmtd/epoch"
	"github.com/zkmtd/zkmtd/internal/zkmtd/logging"
	"github.com/zkmtd/zkmtd/internal/zkmtd/sponge"
	"github.com/zkmtd/zkmtd/internal/zkmtd/zeroize"
	"github.com/zkmtd/zkmtd/internal/zkmtd/zkerr"
)

// Manager owns the MTD seed and tracks the current epoch's params, a
// bounded cache of nearby epochs' params, and the monotonicity
// invariant over epoch advancement. A Manager is not safe for
// concurrent use; run one instance per goroutine.
type Manager struct {
	seed         []byte
	currentEpoch epoch.Epoch
	currentParam WarpingParams
	cache        *lru.Cache
	cfg          *config.Config
	autoAdvance  bool
	destroyed    bool

	// auditTrail hash-chains every state transition this manager has
	// made, so a log consumer can detect a dropped or reordered event
	// without ever seeing the seed.
	auditTrail sponge.Digest
}

// WithEpoch constructs a Manager seeded at e. seed is copied; the
// caller's slice is not retained. cfg may be nil to use
// config.Default().
func WithEpoch(seed []byte, e epoch.Epoch, cfg *config.Config) (*Manager, error) {
	cfg = config.OrDefault(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, zkerr.Wrap(zkerr.MTDError, "invalid config", err)
	}

	params, err := Generate(seed, e)
	if err != nil {
		return nil, err
	}

	cache, err := lru.New(cfg.ParamCacheSize)
	if err != nil {
		return nil, zkerr.Wrap(zkerr.MTDError, "failed to allocate params cache", err)
	}

	owned := make([]byte, len(seed))
	copy(owned, seed)

	m := &Manager{
		seed:         owned,
		currentEpoch: e,
		currentParam: params,
		cache:        cache,
		cfg:          cfg,
		autoAdvance:  true,
	}
	m.chainEvent(epochFingerprint(owned, e))

	l := logging.Logger()
	l.Debug().
		Uint64("epoch", uint64(e)).
		Str("seed_fingerprint", fingerprint(owned)).
		Msg("mtd: manager initialized")

	return m, nil
}

// CurrentEpoch returns the manager's current epoch.
func (m *Manager) CurrentEpoch() epoch.Epoch {
	return m.currentEpoch
}

// CurrentParams returns the params snapshot for the current epoch.
func (m *Manager) CurrentParams() WarpingParams {
	return m.currentParam
}

// SetAutoAdvance toggles whether Sync is allowed to call Advance
// internally; disabling it makes Sync return InvalidEpoch for any
// target epoch other than the current one.
func (m *Manager) SetAutoAdvance(enabled bool) {
	m.autoAdvance = enabled
}

// GetParams returns the params for e: the current snapshot if e
// matches, the cached entry if present, or a freshly derived (and
// cached) entry otherwise.
func (m *Manager) GetParams(e epoch.Epoch) (WarpingParams, error) {
	if m.destroyed {
		return WarpingParams{}, zkerr.New(zkerr.MTDError, "manager has been destroyed")
	}
	if e == m.currentEpoch {
		return m.currentParam, nil
	}
	key := cacheKey(m.seed, e)
	if cached, ok := m.cache.Get(key); ok {
		return cached.(WarpingParams), nil
	}

	params, err := Generate(m.seed, e)
	if err != nil {
		return WarpingParams{}, err
	}
	m.cache.Add(key, params)
	return params, nil
}

// Advance moves the manager to the next epoch, caching the
// now-superseded params. Either every field of the manager's
// observable state advances together, or (on overflow) none does.
func (m *Manager) Advance() error {
	if m.destroyed {
		return zkerr.New(zkerr.MTDError, "manager has been destroyed")
	}

	next, err := m.currentEpoch.Next()
	if err != nil {
		return zkerr.Wrap(zkerr.InvalidEpoch, "epoch overflow", err)
	}

	newParams, err := Generate(m.seed, next)
	if err != nil {
		return err
	}

	m.cache.Add(cacheKey(m.seed, m.currentEpoch), m.currentParam)
	m.currentEpoch = next
	m.currentParam = newParams
	m.chainEvent(epochFingerprint(m.seed, next))

	l := logging.Logger()
	l.Debug().Uint64("epoch", uint64(next)).Msg("mtd: advanced")
	return nil
}

// Sync advances the manager to the epoch containing nowTs. It fails
// with InvalidEpoch ("clock regression") if that epoch precedes the
// current one. If the gap exceeds cfg.MaxSyncJump the cache is
// cleared first, bounding the work of catching up; autoAdvance=false
// makes any forward gap fail instead of being walked.
func (m *Manager) Sync(nowTs uint64) error {
	if m.destroyed {
		return zkerr.New(zkerr.MTDError, "manager has been destroyed")
	}

	target := epoch.FromTimestampWithDuration(nowTs, m.cfg.EpochDurationSecs)
	if target.Before(m.currentEpoch) {
		return zkerr.New(zkerr.InvalidEpoch, "clock regression")
	}
	if target == m.currentEpoch {
		return nil
	}

	gap := target.Distance(m.currentEpoch)
	if !m.autoAdvance {
		return zkerr.New(zkerr.InvalidEpoch, fmt.Sprintf("sync requires advancing %d epochs but auto-advance is disabled", gap))
	}
	if gap > m.cfg.MaxSyncJump {
		m.cache.Purge()
		l := logging.Logger()
		l.Info().Uint64("gap", gap).Msg("mtd: sync jump exceeded bound, cache cleared")
	}

	m.chainEvent(syncFingerprint(m.seed, nowTs))
	for m.currentEpoch != target {
		if err := m.Advance(); err != nil {
			return err
		}
	}
	return nil
}

// ValidateTimestamp reports whether ts falls within
// EpochDurationSecs+TimestampToleranceSecs of the current epoch's
// start.
func (m *Manager) ValidateTimestamp(ts uint64) bool {
	start := m.currentEpoch.ToStartTimestampWithDuration(m.cfg.EpochDurationSecs)
	var diff uint64
	if ts > start {
		diff = ts - start
	} else {
		diff = start - ts
	}
	return diff <= m.cfg.EpochDurationSecs+m.cfg.TimestampToleranceSecs
}

// Destroy overwrites the manager's seed bytes and marks it unusable.
// Subsequent GetParams, Advance, and Sync calls fail with
// zkerr.MTDError; a second Destroy returns the zero digest. Returns a seal
// digest over the manager's final state, computed before the seed is
// wiped, so callers can record in an audit log that this exact
// manager was destroyed without retaining anything secret.
func (m *Manager) Destroy() sponge.Digest {
	if m.destroyed {
		return sponge.Digest{}
	}
	seal := managerSeal(m.seed, m.currentEpoch)
	m.chainEvent(seal)
	zeroize.Bytes(m.seed)
	m.destroyed = true
	l := logging.Logger()
	l.Debug().Msg("mtd: manager destroyed, seed zeroized")
	return seal
}

// AuditDigest returns the current tamper-evident chain digest folding
// together every construction, advance, sync, and destroy event this
// manager has gone through.
func (m *Manager) AuditDigest() sponge.Digest {
	return m.auditTrail
}

// chainEvent folds event into the running audit trail.
func (m *Manager) chainEvent(event sponge.Digest) {
	m.auditTrail = sponge.Combine(m.auditTrail, event, sponge.DomainAuditTrail)
}

// fingerprint returns a non-secret digest of seed suitable for log
// lines, under a domain tag reserved for this purpose alone.
func fingerprint(seed []byte) string {
	d := sponge.H(seed, sponge.DomainSeedFingerprint)
	return fmt.Sprintf("%x", d[:8])
}

// cacheKey derives the params cache's lookup key for (seed, e) under a
// domain tag reserved for this purpose, rather than keying the cache
// directly on the epoch number.
func cacheKey(seed []byte, e epoch.Epoch) sponge.Digest {
	buf := make([]byte, 0, len(seed)+8)
	buf = append(buf, seed...)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(e))
	return sponge.H(buf, sponge.DomainCacheKey)
}

// epochFingerprint is the audit-trail event folded in whenever the
// manager's current epoch changes (construction or Advance).
func epochFingerprint(seed []byte, e epoch.Epoch) sponge.Digest {
	buf := make([]byte, 0, len(seed)+8)
	buf = append(buf, seed...)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(e))
	return sponge.H(buf, sponge.DomainEpochFingerprnt)
}

// syncFingerprint is the audit-trail event folded in on every Sync
// call that advances the epoch (a Sync that fails or finds the epoch
// unchanged adds nothing), so the trail records that a sync to a given
// wall-clock time happened without logging the raw timestamp.
func syncFingerprint(seed []byte, nowTs uint64) sponge.Digest {
	buf := make([]byte, 0, len(seed)+8)
	buf = append(buf, seed...)
	buf = binary.LittleEndian.AppendUint64(buf, nowTs)
	return sponge.H(buf, sponge.DomainSyncFingerprint)
}

// managerSeal is the audit-trail event folded in on Destroy, computed
// over the still-live seed and the epoch the manager was destroyed
// at.
func managerSeal(seed []byte, e epoch.Epoch) sponge.Digest {
	buf := make([]byte, 0, len(seed)+8)
	buf = append(buf, seed...)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(e))
	return sponge.H(buf, sponge.DomainManagerSeal)
}
