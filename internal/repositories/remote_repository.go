package repositories

import (
	"context"

	"fruteria/internal/models"
	"fruteria/pkg/apiclient"
)

// RemoteProductRepository stores products through a remote inventory API.
type RemoteProductRepository struct {
	client *apiclient.Client
}

// NewRemoteProductRepository wraps client as a ProductRepository.
func NewRemoteProductRepository(client *apiclient.Client) *RemoteProductRepository {
	return &RemoteProductRepository{client: client}
}

func (r *RemoteProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	return r.client.ListProducts(ctx)
}

func (r *RemoteProductRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	return r.client.GetProduct(ctx, id)
}

// GetForUpdate cannot lock anything remotely and reads like GetByID.
func (r *RemoteProductRepository) GetForUpdate(ctx context.Context, id uint) (*models.Product, error) {
	return r.client.GetProduct(ctx, id)
}

func (r *RemoteProductRepository) Create(ctx context.Context, product *models.Product) error {
	created, err := r.client.CreateProduct(ctx, *product)
	if err != nil {
		return err
	}
	*product = *created
	return nil
}

// Update sends the whole product as a PATCH body.
func (r *RemoteProductRepository) Update(ctx context.Context, product *models.Product) error {
	updated, err := r.client.PatchProduct(ctx, product.ID, product)
	if err != nil {
		return err
	}
	*product = *updated
	return nil
}

func (r *RemoteProductRepository) Delete(ctx context.Context, id uint) error {
	return r.client.DeleteProduct(ctx, id)
}

// RemoteStockEntryRepository stores entries through a remote inventory API.
type RemoteStockEntryRepository struct {
	client *apiclient.Client
}

// NewRemoteStockEntryRepository wraps client as a StockEntryRepository.
func NewRemoteStockEntryRepository(client *apiclient.Client) *RemoteStockEntryRepository {
	return &RemoteStockEntryRepository{client: client}
}

func (r *RemoteStockEntryRepository) GetAll(ctx context.Context) ([]models.StockEntry, error) {
	return r.client.ListEntries(ctx)
}

func (r *RemoteStockEntryRepository) GetByID(ctx context.Context, id uint) (*models.StockEntry, error) {
	return r.client.GetEntry(ctx, id)
}

func (r *RemoteStockEntryRepository) Create(ctx context.Context, entry *models.StockEntry) error {
	created, err := r.client.CreateEntry(ctx, *entry)
	if err != nil {
		return err
	}
	*entry = *created
	return nil
}

func (r *RemoteStockEntryRepository) Delete(ctx context.Context, id uint) error {
	return r.client.DeleteEntry(ctx, id)
}

// RemoteStockExitRepository stores exits through a remote inventory API.
type RemoteStockExitRepository struct {
	client *apiclient.Client
}

// NewRemoteStockExitRepository wraps client as a StockExitRepository.
func NewRemoteStockExitRepository(client *apiclient.Client) *RemoteStockExitRepository {
	return &RemoteStockExitRepository{client: client}
}

func (r *RemoteStockExitRepository) GetAll(ctx context.Context) ([]models.StockExit, error) {
	return r.client.ListExits(ctx)
}

func (r *RemoteStockExitRepository) GetByID(ctx context.Context, id uint) (*models.StockExit, error) {
	return r.client.GetExit(ctx, id)
}

func (r *RemoteStockExitRepository) Create(ctx context.Context, exit *models.StockExit) error {
	created, err := r.client.CreateExit(ctx, *exit)
	if err != nil {
		return err
	}
	*exit = *created
	return nil
}

func (r *RemoteStockExitRepository) Delete(ctx context.Context, id uint) error {
	return r.client.DeleteExit(ctx, id)
}

// RemoteTxRunner hands fn the remote repositories directly. The remote API has
// no transactions: each write is committed as soon as it returns, so an error
// after the first write leaves the earlier writes in place.
type RemoteTxRunner struct {
	repos Repositories
}

// NewRemoteStore builds the remote repositories and their runner.
func NewRemoteStore(client *apiclient.Client) (Repositories, *RemoteTxRunner) {
	repos := Repositories{
		Products: NewRemoteProductRepository(client),
		Entries:  NewRemoteStockEntryRepository(client),
		Exits:    NewRemoteStockExitRepository(client),
	}
	return repos, &RemoteTxRunner{repos: repos}
}

// Run implements TxRunner without atomicity.
func (r *RemoteTxRunner) Run(_ context.Context, fn func(repos Repositories) error) error {
	return fn(r.repos)
}
