package backend

import (
	"fmt"

	"vincit.fi/image-picker/api"
	"vincit.fi/image-picker/backend/internal/database"
	"vincit.fi/image-picker/backend/internal/host"
	"vincit.fi/image-picker/backend/internal/picker"
	"vincit.fi/image-picker/backend/internal/resolver"
	"vincit.fi/image-picker/backend/internal/resource"
	"vincit.fi/image-picker/common"
	"vincit.fi/image-picker/common/event"
	"vincit.fi/image-picker/common/imagereader"
	"vincit.fi/image-picker/common/logger"
)

type Stores struct {
	JournalStore *database.JournalStore
	journalDb    *database.Database
}

func (s *Stores) Close() {
	s.journalDb.Close()
}

// InitializeStores opens the pick journal. An empty journal path keeps it in
// memory for the lifetime of the process.
func InitializeStores(journalPath string) (*Stores, error) {
	logger.Debug.Printf("Initialize stores...")
	var journalDb *database.Database
	var err error
	if journalPath == "" {
		journalDb, err = database.NewInMemoryDatabase()
	} else {
		journalDb, err = database.NewDatabase(journalPath)
	}
	if err != nil {
		return nil, err
	}

	if _, err := journalDb.Migrate(); err != nil {
		journalDb.Close()
		return nil, err
	}

	stores := &Stores{
		JournalStore: database.NewJournalStore(journalDb),
		journalDb:    journalDb,
	}
	logger.Debug.Printf("Stores initialized")
	return stores, nil
}

type Brokers struct {
	Broker *event.Broker
	Queue  *event.Queue
}

func (s *Brokers) Close() {
	s.Queue.Close()
	s.Broker.Close()
}

func InitializeEventBrokers(eventBusQueueSize int) (*Brokers, error) {
	logger.Debug.Printf("Initialize event brokers...")
	broker := event.InitBus(eventBusQueueSize)
	queue, err := event.NewQueue(broker, eventBusQueueSize)
	if err != nil {
		broker.Close()
		return nil, err
	}
	logger.Debug.Printf("Event brokers initialized")
	return &Brokers{
		Broker: broker,
		Queue:  queue,
	}, nil
}

type Services struct {
	ResourceTable api.ResourceTable
	Resolver      api.ContentResolver
	ImageReader   api.ImageReader
	Host          api.PickerHost
	Picker        api.Picker
}

func InitializeServices(params *common.Params, stores *Stores, brokers *Brokers) (*Services, error) {
	logger.Debug.Printf("Initialize services...")
	pickerHost, err := host.New(params.Host(), host.Options{
		File:     params.File(),
		WatchDir: params.WatchDir(),
		StartDir: params.StartDir(),
		Timeout:  params.Timeout(),
	})
	if err != nil {
		return nil, err
	}

	table := resource.NewTable()
	contentResolver := resolver.NewFileSystemResolver()
	imageReader := imagereader.NewReader(params.ApplyExifOrientation())

	adapter := picker.NewAdapter(picker.Config{
		Mode:           params.Mode(),
		SilentFailures: params.SilentFailures(),
	}, picker.Dependencies{
		Host:     pickerHost,
		Resolver: contentResolver,
		Reader:   imageReader,
		Table:    table,
		Registry: table,
		Sink:     brokers.Broker,
		Journal:  stores.JournalStore,
	})

	logger.Debug.Printf("Services initialized with host '%s' in %s mode", pickerHost.Name(), params.Mode())
	return &Services{
		ResourceTable: table,
		Resolver:      contentResolver,
		ImageReader:   imageReader,
		Host:          pickerHost,
		Picker:        adapter,
	}, nil
}

// Backend bundles everything a pick needs.
type Backend struct {
	Stores   *Stores
	Brokers  *Brokers
	Services *Services
}

func New(params *common.Params) (*Backend, error) {
	stores, err := InitializeStores(params.Journal())
	if err != nil {
		return nil, fmt.Errorf("initialize stores: %w", err)
	}
	brokers, err := InitializeEventBrokers(params.EventQueueSize())
	if err != nil {
		stores.Close()
		return nil, fmt.Errorf("initialize event brokers: %w", err)
	}
	services, err := InitializeServices(params, stores, brokers)
	if err != nil {
		brokers.Close()
		stores.Close()
		return nil, fmt.Errorf("initialize services: %w", err)
	}
	return &Backend{
		Stores:   stores,
		Brokers:  brokers,
		Services: services,
	}, nil
}

func (s *Backend) Close() {
	defer s.Stores.Close()
	defer s.Brokers.Close()
}
