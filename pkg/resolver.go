package channelmap

import (
	"fmt"
	"sync"
)

// StoreLoader builds the channel map the first time a detector context needs it.
type StoreLoader func(l Logger) (*Store, LoadReport)

// Resolver translates between channel ids and geometry ids. For simulated
// events the translation is computed, for detector events it is read from
// the channel map, which is loaded on first use.
//
// ChannelFor and GeometryFor take the event context explicitly and are safe
// for concurrent use. GetChannel and GetGeometry use the context stored by
// SetContext.
type Resolver struct {
	mu      sync.RWMutex
	context EventContext

	loadOnce sync.Once
	loader   StoreLoader
	store    *Store
	report   LoadReport

	logger        Logger
	wiresPerPlane int
}

type Option func(*Resolver)

func WithLogger(l Logger) Option {
	return func(r *Resolver) { r.logger = l }
}

// WithStore uses an already loaded channel map.
func WithStore(s *Store) Option {
	return func(r *Resolver) {
		r.loader = func(Logger) (*Store, LoadReport) {
			return s, LoadReport{Source: s.Source(), Entries: s.Len()}
		}
	}
}

// WithMapFile loads the channel map from path instead of the environment.
func WithMapFile(path string) Option {
	return func(r *Resolver) {
		r.loader = func(l Logger) (*Store, LoadReport) { return LoadStoreFile(path, l) }
	}
}

// WithMapVariable changes the environment variable naming the channel map.
func WithMapVariable(variable string) Option {
	return func(r *Resolver) {
		r.loader = func(l Logger) (*Store, LoadReport) { return LoadStoreFromEnv(variable, l) }
	}
}

func WithWiresPerPlane(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.wiresPerPlane = n
		}
	}
}

func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		logger:        logger,
		wiresPerPlane: DefaultWiresPerPlane,
	}
	r.loader = func(l Logger) (*Store, LoadReport) { return LoadStoreFromEnv(DefaultMapVariable, l) }
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logger
	}
	return r
}

// Store returns the channel map, loading it on the first call.
func (r *Resolver) Store() *Store {
	r.loadOnce.Do(func() {
		defer func() {
			if rec := recover(); rec != nil {
				err := fmt.Errorf("%w: %v", ErrLoadPanic, rec)
				r.logger.Error(err.Error())
				r.report.Errors = append(r.report.Errors, err)
			}
			if r.store == nil {
				r.store = newStore(r.report.Source, r.logger)
			}
		}()
		r.store, r.report = r.loader(r.logger)
	})
	return r.store
}

// LoadReport describes how the channel map was loaded.
func (r *Resolver) LoadReport() LoadReport {
	r.Store()
	return r.report
}

// SetContext replaces the stored context. It is checked when used.
func (r *Resolver) SetContext(ctx EventContext) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.context = ctx
}

// GetContext returns the stored context, which is invalid (and reported)
// when SetContext was never called.
func (r *Resolver) GetContext() EventContext {
	r.mu.RLock()
	ctx := r.context
	r.mu.RUnlock()
	if !ctx.IsValid() {
		r.logger.Error(ErrInvalidContext.Error())
	}
	return ctx
}

// ChannelFor returns the channel reading out gid in the given context.
// Only index 0 exists at the moment.
func (r *Resolver) ChannelFor(ctx EventContext, gid GeometryID, index int) (ChannelID, error) {
	if index != 0 {
		return ChannelID{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	if !gid.IsValid() {
		return ChannelID{}, fmt.Errorf("%w: cannot be translated to a channel", ErrInvalidGeometry)
	}

	switch ctx.Mode() {
	case Simulated:
		switch {
		case gid.IsWire():
			return NewWireChannelID(gid.Plane(), gid.WireNumber()), nil
		case gid.IsPhotosensor():
			return NewPhotosensorChannelID(gid.Photosensor()), nil
		}
		return ChannelID{}, fmt.Errorf("%w: %v", ErrUnsupportedKind, gid)
	case Detector:
		cid, found := r.Store().lookupChannel(gid)
		if !found {
			return ChannelID{}, fmt.Errorf("%w: channel for %v", ErrNotFound, gid)
		}
		return cid, nil
	}
	return ChannelID{}, fmt.Errorf("%w: need a context to translate geometry to channel", ErrInvalidContext)
}

// GeometryFor returns the detector element read by cid in the given context.
// Only index 0 exists at the moment.
func (r *Resolver) GeometryFor(ctx EventContext, cid ChannelID, index int) (GeometryID, error) {
	if index != 0 {
		return GeometryID{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	mode := ctx.Mode()
	if mode == InvalidMode {
		return GeometryID{}, fmt.Errorf("%w: need a context to translate channel to geometry", ErrInvalidContext)
	}
	if !cid.IsValid() {
		return GeometryID{}, fmt.Errorf("%w: cannot be translated to geometry", ErrInvalidChannel)
	}

	if mode == Simulated {
		switch cid.Type() {
		case MCWireType:
			return NewWireGeometryID(Plane(cid.Sequence()), cid.Number()), nil
		case MCPhotosensorType:
			return NewPhotosensorGeometryID(cid.Number()), nil
		}
		return GeometryID{}, fmt.Errorf("%w: %v", ErrUnsupportedKind, cid)
	}

	gid, found := r.Store().lookupGeometry(cid)
	if !found {
		return GeometryID{}, fmt.Errorf("%w: geometry for %v", ErrNotFound, cid)
	}
	return gid, nil
}

// GetChannel translates with the stored context. Failures are logged and
// give an invalid channel id.
func (r *Resolver) GetChannel(gid GeometryID, index int) ChannelID {
	if index != 0 {
		return ChannelID{}
	}
	cid, err := r.ChannelFor(r.GetContext(), gid, index)
	if err != nil {
		r.logger.Error(err.Error())
	}
	return cid
}

// GetGeometry translates with the stored context. Failures are logged and
// give an invalid geometry id.
func (r *Resolver) GetGeometry(cid ChannelID, index int) GeometryID {
	if index != 0 {
		return GeometryID{}
	}
	gid, err := r.GeometryFor(r.GetContext(), cid, index)
	if err != nil {
		r.logger.Error(err.Error())
	}
	return gid
}

func (r *Resolver) GetChannelCount(gid GeometryID) int {
	if !gid.IsValid() {
		return 0
	}
	return 1
}

func (r *Resolver) GetGeometryCount(cid ChannelID) int {
	if !cid.IsValid() {
		return 0
	}
	return 1
}
