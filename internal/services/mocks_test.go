package services

import (
	"context"
	"io"
	"time"

	"hidecraft/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// stubTx satisfies pgx.Tx for transaction-shaped service paths. The repo
// methods that receive it are mocked, so it never touches a connection.
type stubTx struct {
	committed  bool
	rolledBack bool
}

func (t *stubTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }

func (t *stubTx) Commit(ctx context.Context) error {
	if t.committed || t.rolledBack {
		return pgx.ErrTxClosed
	}
	t.committed = true
	return nil
}

func (t *stubTx) Rollback(ctx context.Context) error {
	if t.committed {
		return pgx.ErrTxClosed
	}
	t.rolledBack = true
	return nil
}

func (t *stubTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *stubTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *stubTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *stubTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *stubTx) Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (t *stubTx) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	return nil, nil
}
func (t *stubTx) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row { return nil }
func (t *stubTx) Conn() *pgx.Conn                                                       { return nil }

// stubDatabase hands out stubTx transactions.
type stubDatabase struct {
	tx *stubTx
}

func newStubDatabase() *stubDatabase {
	return &stubDatabase{tx: &stubTx{}}
}

func (d *stubDatabase) Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (d *stubDatabase) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	return nil, nil
}
func (d *stubDatabase) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	return nil
}
func (d *stubDatabase) Begin(ctx context.Context) (pgx.Tx, error) { return d.tx, nil }

type MockMaterialRepository struct {
	mock.Mock
}

func (m *MockMaterialRepository) Create(ctx context.Context, material *models.Material) error {
	args := m.Called(ctx, material)
	return args.Error(0)
}

func (m *MockMaterialRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Material, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Material), args.Error(1)
}

func (m *MockMaterialRepository) Update(ctx context.Context, material *models.Material) error {
	args := m.Called(ctx, material)
	return args.Error(0)
}

func (m *MockMaterialRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.StockStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockMaterialRepository) UpdateStatusTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, status models.StockStatus) error {
	args := m.Called(ctx, tx, id, status)
	return args.Error(0)
}

func (m *MockMaterialRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMaterialRepository) List(ctx context.Context, limit, offset int) ([]*models.Material, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Material), args.Error(1)
}

func (m *MockMaterialRepository) Search(ctx context.Context, filter *models.MaterialSearchFilter) ([]*models.Material, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*models.Material), args.Error(1)
}

type MockStockRepository struct {
	mock.Mock
}

func (m *MockStockRepository) Create(ctx context.Context, level *models.StockLevel) error {
	args := m.Called(ctx, level)
	return args.Error(0)
}

func (m *MockStockRepository) CreateTx(ctx context.Context, tx pgx.Tx, level *models.StockLevel) error {
	args := m.Called(ctx, tx, level)
	return args.Error(0)
}

func (m *MockStockRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.StockLevel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StockLevel), args.Error(1)
}

func (m *MockStockRepository) GetByMaterialAndLocation(ctx context.Context, materialID uuid.UUID, location string) (*models.StockLevel, error) {
	args := m.Called(ctx, materialID, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StockLevel), args.Error(1)
}

func (m *MockStockRepository) GetByMaterialAndLocationTx(ctx context.Context, tx pgx.Tx, materialID uuid.UUID, location string) (*models.StockLevel, error) {
	args := m.Called(ctx, tx, materialID, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StockLevel), args.Error(1)
}

func (m *MockStockRepository) Update(ctx context.Context, level *models.StockLevel) error {
	args := m.Called(ctx, level)
	return args.Error(0)
}

func (m *MockStockRepository) UpdateTx(ctx context.Context, tx pgx.Tx, level *models.StockLevel) error {
	args := m.Called(ctx, tx, level)
	return args.Error(0)
}

func (m *MockStockRepository) ListByMaterial(ctx context.Context, materialID uuid.UUID) ([]*models.StockLevel, error) {
	args := m.Called(ctx, materialID)
	return args.Get(0).([]*models.StockLevel), args.Error(1)
}

func (m *MockStockRepository) ListByMaterialTx(ctx context.Context, tx pgx.Tx, materialID uuid.UUID) ([]*models.StockLevel, error) {
	args := m.Called(ctx, tx, materialID)
	return args.Get(0).([]*models.StockLevel), args.Error(1)
}

func (m *MockStockRepository) Search(ctx context.Context, filter *models.StockSearchFilter) ([]*models.StockLevel, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*models.StockLevel), args.Error(1)
}

func (m *MockStockRepository) AddMovement(ctx context.Context, movement *models.StockMovement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *MockStockRepository) AddMovementTx(ctx context.Context, tx pgx.Tx, movement *models.StockMovement) error {
	args := m.Called(ctx, tx, movement)
	return args.Error(0)
}

func (m *MockStockRepository) ListMovements(ctx context.Context, materialID uuid.UUID, limit, offset int) ([]*models.StockMovement, error) {
	args := m.Called(ctx, materialID, limit, offset)
	return args.Get(0).([]*models.StockMovement), args.Error(1)
}

type MockPickingRepository struct {
	mock.Mock
}

func (m *MockPickingRepository) CreateList(ctx context.Context, list *models.PickingList) error {
	args := m.Called(ctx, list)
	return args.Error(0)
}

func (m *MockPickingRepository) GetListByID(ctx context.Context, id uuid.UUID) (*models.PickingList, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PickingList), args.Error(1)
}

func (m *MockPickingRepository) UpdateList(ctx context.Context, list *models.PickingList) error {
	args := m.Called(ctx, list)
	return args.Error(0)
}

func (m *MockPickingRepository) UpdateListTx(ctx context.Context, tx pgx.Tx, list *models.PickingList) error {
	args := m.Called(ctx, tx, list)
	return args.Error(0)
}

func (m *MockPickingRepository) ListLists(ctx context.Context, limit, offset int) ([]*models.PickingList, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.PickingList), args.Error(1)
}

func (m *MockPickingRepository) DeleteList(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPickingRepository) AddItem(ctx context.Context, item *models.PickingItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockPickingRepository) GetItemByID(ctx context.Context, id uuid.UUID) (*models.PickingItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PickingItem), args.Error(1)
}

func (m *MockPickingRepository) GetItemByIDTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*models.PickingItem, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PickingItem), args.Error(1)
}

func (m *MockPickingRepository) UpdateItemTx(ctx context.Context, tx pgx.Tx, item *models.PickingItem) error {
	args := m.Called(ctx, tx, item)
	return args.Error(0)
}

func (m *MockPickingRepository) ListItems(ctx context.Context, listID uuid.UUID) ([]*models.PickingItem, error) {
	args := m.Called(ctx, listID)
	return args.Get(0).([]*models.PickingItem), args.Error(1)
}

func (m *MockPickingRepository) ListItemsTx(ctx context.Context, tx pgx.Tx, listID uuid.UUID) ([]*models.PickingItem, error) {
	args := m.Called(ctx, tx, listID)
	return args.Get(0).([]*models.PickingItem), args.Error(1)
}

type MockPurchaseRepository struct {
	mock.Mock
}

func (m *MockPurchaseRepository) Create(ctx context.Context, purchase *models.Purchase) error {
	args := m.Called(ctx, purchase)
	return args.Error(0)
}

func (m *MockPurchaseRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Purchase, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) Update(ctx context.Context, purchase *models.Purchase) error {
	args := m.Called(ctx, purchase)
	return args.Error(0)
}

func (m *MockPurchaseRepository) UpdateTx(ctx context.Context, tx pgx.Tx, purchase *models.Purchase) error {
	args := m.Called(ctx, tx, purchase)
	return args.Error(0)
}

func (m *MockPurchaseRepository) List(ctx context.Context, limit, offset int) ([]*models.Purchase, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPurchaseRepository) AddItem(ctx context.Context, item *models.PurchaseItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockPurchaseRepository) GetItemByID(ctx context.Context, id uuid.UUID) (*models.PurchaseItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PurchaseItem), args.Error(1)
}

func (m *MockPurchaseRepository) GetItemByIDTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*models.PurchaseItem, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PurchaseItem), args.Error(1)
}

func (m *MockPurchaseRepository) UpdateItem(ctx context.Context, item *models.PurchaseItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockPurchaseRepository) UpdateItemTx(ctx context.Context, tx pgx.Tx, item *models.PurchaseItem) error {
	args := m.Called(ctx, tx, item)
	return args.Error(0)
}

func (m *MockPurchaseRepository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPurchaseRepository) ListItems(ctx context.Context, purchaseID uuid.UUID) ([]*models.PurchaseItem, error) {
	args := m.Called(ctx, purchaseID)
	return args.Get(0).([]*models.PurchaseItem), args.Error(1)
}

func (m *MockPurchaseRepository) ListItemsTx(ctx context.Context, tx pgx.Tx, purchaseID uuid.UUID) ([]*models.PurchaseItem, error) {
	args := m.Called(ctx, tx, purchaseID)
	return args.Get(0).([]*models.PurchaseItem), args.Error(1)
}

type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) Create(ctx context.Context, project *models.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockProjectRepository) Update(ctx context.Context, project *models.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProjectRepository) List(ctx context.Context, limit, offset int) ([]*models.Project, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Project), args.Error(1)
}

func (m *MockProjectRepository) ListByStatus(ctx context.Context, status models.ProjectStatus, limit, offset int) ([]*models.Project, error) {
	args := m.Called(ctx, status, limit, offset)
	return args.Get(0).([]*models.Project), args.Error(1)
}

func (m *MockProjectRepository) AddComponent(ctx context.Context, component *models.ProjectComponent) error {
	args := m.Called(ctx, component)
	return args.Error(0)
}

func (m *MockProjectRepository) ListComponents(ctx context.Context, projectID uuid.UUID) ([]*models.ProjectComponent, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]*models.ProjectComponent), args.Error(1)
}

func (m *MockProjectRepository) DeleteComponent(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPatternRepository struct {
	mock.Mock
}

func (m *MockPatternRepository) Create(ctx context.Context, pattern *models.Pattern) error {
	args := m.Called(ctx, pattern)
	return args.Error(0)
}

func (m *MockPatternRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Pattern, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Pattern), args.Error(1)
}

func (m *MockPatternRepository) Update(ctx context.Context, pattern *models.Pattern) error {
	args := m.Called(ctx, pattern)
	return args.Error(0)
}

func (m *MockPatternRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPatternRepository) List(ctx context.Context, limit, offset int) ([]*models.Pattern, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Pattern), args.Error(1)
}

type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) Create(ctx context.Context, supplier *models.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *MockSupplierRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) Update(ctx context.Context, supplier *models.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *MockSupplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSupplierRepository) List(ctx context.Context, limit, offset int) ([]*models.Supplier, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Supplier), args.Error(1)
}

type MockToolRepository struct {
	mock.Mock
}

func (m *MockToolRepository) Create(ctx context.Context, tool *models.Tool) error {
	args := m.Called(ctx, tool)
	return args.Error(0)
}

func (m *MockToolRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Tool, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tool), args.Error(1)
}

func (m *MockToolRepository) Update(ctx context.Context, tool *models.Tool) error {
	args := m.Called(ctx, tool)
	return args.Error(0)
}

func (m *MockToolRepository) UpdateTx(ctx context.Context, tx pgx.Tx, tool *models.Tool) error {
	args := m.Called(ctx, tx, tool)
	return args.Error(0)
}

func (m *MockToolRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockToolRepository) List(ctx context.Context, limit, offset int) ([]*models.Tool, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Tool), args.Error(1)
}

func (m *MockToolRepository) AddCheckout(ctx context.Context, checkout *models.ToolCheckout) error {
	args := m.Called(ctx, checkout)
	return args.Error(0)
}

func (m *MockToolRepository) GetOpenCheckout(ctx context.Context, toolID uuid.UUID) (*models.ToolCheckout, error) {
	args := m.Called(ctx, toolID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ToolCheckout), args.Error(1)
}

func (m *MockToolRepository) CloseCheckout(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockToolRepository) ListCheckouts(ctx context.Context, toolID uuid.UUID) ([]*models.ToolCheckout, error) {
	args := m.Called(ctx, toolID)
	return args.Get(0).([]*models.ToolCheckout), args.Error(1)
}

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Update(ctx context.Context, customer *models.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCustomerRepository) List(ctx context.Context, limit, offset int) ([]*models.Customer, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Customer), args.Error(1)
}

type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) Create(ctx context.Context, sale *models.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Sale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Sale), args.Error(1)
}

func (m *MockSaleRepository) Update(ctx context.Context, sale *models.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) UpdateTx(ctx context.Context, tx pgx.Tx, sale *models.Sale) error {
	args := m.Called(ctx, tx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) List(ctx context.Context, limit, offset int) ([]*models.Sale, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Sale), args.Error(1)
}

func (m *MockSaleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSaleRepository) CountCompletedByCustomer(ctx context.Context, customerID uuid.UUID) (int, error) {
	args := m.Called(ctx, customerID)
	return args.Int(0), args.Error(1)
}

func (m *MockSaleRepository) AddItem(ctx context.Context, item *models.SaleItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockSaleRepository) ListItems(ctx context.Context, saleID uuid.UUID) ([]*models.SaleItem, error) {
	args := m.Called(ctx, saleID)
	return args.Get(0).([]*models.SaleItem), args.Error(1)
}

func (m *MockSaleRepository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetMaterial(ctx context.Context, materialID uuid.UUID) (*models.Material, error) {
	args := m.Called(ctx, materialID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Material), args.Error(1)
}

func (m *MockCacheService) SetMaterial(ctx context.Context, material *models.Material, ttl time.Duration) error {
	args := m.Called(ctx, material, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeleteMaterial(ctx context.Context, materialID uuid.UUID) error {
	args := m.Called(ctx, materialID)
	return args.Error(0)
}

func (m *MockCacheService) GetStockLevel(ctx context.Context, materialID uuid.UUID, location string) (*models.StockLevel, error) {
	args := m.Called(ctx, materialID, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StockLevel), args.Error(1)
}

func (m *MockCacheService) SetStockLevel(ctx context.Context, level *models.StockLevel, ttl time.Duration) error {
	args := m.Called(ctx, level, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeleteStockLevel(ctx context.Context, materialID uuid.UUID, location string) error {
	args := m.Called(ctx, materialID, location)
	return args.Error(0)
}

func (m *MockCacheService) InvalidateMaterialStock(ctx context.Context, materialID uuid.UUID) error {
	args := m.Called(ctx, materialID)
	return args.Error(0)
}

func (m *MockCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheService) GetString(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheService) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type MockInventoryService struct {
	mock.Mock
}

func (m *MockInventoryService) TotalQuantity(ctx context.Context, materialID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, materialID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockInventoryService) UpdateAtLocation(ctx context.Context, materialID uuid.UUID, location string, quantity decimal.Decimal, mode UpdateMode, notes *string) (*models.StockLevel, error) {
	args := m.Called(ctx, materialID, location, quantity, mode, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StockLevel), args.Error(1)
}

func (m *MockInventoryService) Transfer(ctx context.Context, materialID uuid.UUID, fromLocation, toLocation string, quantity decimal.Decimal) error {
	args := m.Called(ctx, materialID, fromLocation, toLocation, quantity)
	return args.Error(0)
}

func (m *MockInventoryService) GetStockLevel(ctx context.Context, materialID uuid.UUID, location string) (*models.StockLevel, error) {
	args := m.Called(ctx, materialID, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StockLevel), args.Error(1)
}

func (m *MockInventoryService) ListByMaterial(ctx context.Context, materialID uuid.UUID) ([]*models.StockLevel, error) {
	args := m.Called(ctx, materialID)
	return args.Get(0).([]*models.StockLevel), args.Error(1)
}

func (m *MockInventoryService) Search(ctx context.Context, filter *models.StockSearchFilter) ([]*models.StockLevel, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*models.StockLevel), args.Error(1)
}

func (m *MockInventoryService) ListMovements(ctx context.Context, materialID uuid.UUID, limit, offset int) ([]*models.StockMovement, error) {
	args := m.Called(ctx, materialID, limit, offset)
	return args.Get(0).([]*models.StockMovement), args.Error(1)
}

func (m *MockInventoryService) AdjustTx(ctx context.Context, tx pgx.Tx, materialID uuid.UUID, location string, delta decimal.Decimal, kind models.TransactionKind, notes *string) (*models.StockLevel, error) {
	args := m.Called(ctx, tx, materialID, location, delta, kind, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StockLevel), args.Error(1)
}

func (m *MockInventoryService) InvalidateStockCache(ctx context.Context, materialID uuid.UUID, location string) {
	m.Called(ctx, materialID, location)
}

type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) Create(ctx context.Context, customer *models.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerService) GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *MockCustomerService) Update(ctx context.Context, customer *models.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCustomerService) List(ctx context.Context, limit, offset int) ([]*models.Customer, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Customer), args.Error(1)
}

func (m *MockCustomerService) RefreshTier(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

type MockStorageService struct {
	mock.Mock
}

func (m *MockStorageService) Upload(ctx context.Context, bucketName, objectName, contentType string, reader io.Reader, objectSize int64) error {
	args := m.Called(ctx, bucketName, objectName, contentType, reader, objectSize)
	return args.Error(0)
}

func (m *MockStorageService) GetPresignedURL(ctx context.Context, bucketName, objectName string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, bucketName, objectName, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockStorageService) Delete(ctx context.Context, bucketName, objectName string) error {
	args := m.Called(ctx, bucketName, objectName)
	return args.Error(0)
}

func (m *MockStorageService) EnsureBucketExists(ctx context.Context, bucketName string) error {
	args := m.Called(ctx, bucketName)
	return args.Error(0)
}
