package services_test

import (
	"testing"

	"github.com/SajithPrawanthaFernando/quick-bite-fe/internal/models"
	"github.com/SajithPrawanthaFernando/quick-bite-fe/internal/repositories"
	"github.com/SajithPrawanthaFernando/quick-bite-fe/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of repositories.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetAll() ([]models.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockRestaurantRepository is a mock implementation of
// repositories.RestaurantRepository.
type MockRestaurantRepository struct {
	mock.Mock
}

func (m *MockRestaurantRepository) GetAll() ([]models.Restaurant, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Restaurant), args.Error(1)
}

func (m *MockRestaurantRepository) GetByApproval(status models.ApprovalStatus) ([]models.Restaurant, error) {
	args := m.Called(status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Restaurant), args.Error(1)
}

func (m *MockRestaurantRepository) GetByID(id string) (*models.Restaurant, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Restaurant), args.Error(1)
}

func (m *MockRestaurantRepository) GetByOwner(ownerID string) ([]models.Restaurant, error) {
	args := m.Called(ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Restaurant), args.Error(1)
}

func (m *MockRestaurantRepository) Create(restaurant *models.Restaurant) error {
	args := m.Called(restaurant)
	return args.Error(0)
}

func (m *MockRestaurantRepository) Update(restaurant *models.Restaurant) error {
	args := m.Called(restaurant)
	return args.Error(0)
}

func (m *MockRestaurantRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func newTestDeliveryService() (*services.DeliveryService, *repositories.MockOrderRepository, *repositories.MockDeliveryRepository, *MockUserRepository, *MockRestaurantRepository) {
	orderRepo := repositories.NewMockOrderRepository()
	deliveryRepo := repositories.NewMockDeliveryRepository()
	userRepo := new(MockUserRepository)
	restaurantRepo := new(MockRestaurantRepository)
	svc := services.NewDeliveryService(deliveryRepo, orderRepo, userRepo, restaurantRepo, nil, nil, nil)
	return svc, orderRepo, deliveryRepo, userRepo, restaurantRepo
}

func testDriver() *models.User {
	return &models.User{
		ID:       "driver-1",
		FullName: "Kasun Perera",
		Roles:    "user,driver",
	}
}

func TestDeliveryService_AcceptOrder(t *testing.T) {
	svc, orderRepo, _, userRepo, restaurantRepo := newTestDeliveryService()
	order := seedOrder(t, orderRepo, models.OrderPending)

	userRepo.On("GetByID", order.CustomerID).Return(&models.User{
		ID: order.CustomerID, FullName: "Nimal Silva", Phone: "0771234567",
	}, nil).Once()
	restaurantRepo.On("GetByID", order.RestaurantID).Return(&models.Restaurant{
		ID: order.RestaurantID, Address: "12 Galle Road, Colombo",
	}, nil).Once()

	delivery, err := svc.AcceptOrder(testDriver(), order.ID, "ring the bell")
	assert.NoError(t, err)
	assert.Equal(t, models.DeliveryUnassigned, delivery.Status)
	assert.Equal(t, "driver-1", delivery.DriverID)
	assert.Equal(t, "Nimal Silva", delivery.CustomerName)
	assert.Equal(t, "12 Galle Road, Colombo", delivery.PickupLocation)

	// Acceptance confirms the order in the same operation.
	stored, err := orderRepo.GetByID(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderConfirmed, stored.Status)
}

func TestDeliveryService_AcceptOrder_SecondRiderRejected(t *testing.T) {
	svc, orderRepo, _, userRepo, restaurantRepo := newTestDeliveryService()
	order := seedOrder(t, orderRepo, models.OrderPending)

	userRepo.On("GetByID", mock.Anything).Return(nil, assert.AnError)
	restaurantRepo.On("GetByID", mock.Anything).Return(nil, assert.AnError)

	_, err := svc.AcceptOrder(testDriver(), order.ID, "")
	assert.NoError(t, err)

	other := &models.User{ID: "driver-2", FullName: "Sunil Jayasuriya"}
	_, err = svc.AcceptOrder(other, order.ID, "")
	assert.ErrorIs(t, err, services.ErrOrderAlreadyAssigned)
}

func TestDeliveryService_AcceptOrder_SameRiderIsIdempotent(t *testing.T) {
	svc, orderRepo, _, userRepo, restaurantRepo := newTestDeliveryService()
	order := seedOrder(t, orderRepo, models.OrderPending)

	userRepo.On("GetByID", mock.Anything).Return(nil, assert.AnError)
	restaurantRepo.On("GetByID", mock.Anything).Return(nil, assert.AnError)

	driver := testDriver()
	first, err := svc.AcceptOrder(driver, order.ID, "")
	assert.NoError(t, err)

	again, err := svc.AcceptOrder(driver, order.ID, "")
	assert.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
}

func TestDeliveryService_AcceptOrder_NonPendingOrderRejected(t *testing.T) {
	svc, orderRepo, _, _, _ := newTestDeliveryService()
	order := seedOrder(t, orderRepo, models.OrderCancelled)

	_, err := svc.AcceptOrder(testDriver(), order.ID, "")
	assert.ErrorIs(t, err, services.ErrInvalidTransition)
}

func acceptForTest(t *testing.T, svc *services.DeliveryService, orderRepo *repositories.MockOrderRepository, userRepo *MockUserRepository, restaurantRepo *MockRestaurantRepository) *models.Delivery {
	t.Helper()
	order := seedOrder(t, orderRepo, models.OrderPending)
	userRepo.On("GetByID", mock.Anything).Return(nil, assert.AnError)
	restaurantRepo.On("GetByID", mock.Anything).Return(nil, assert.AnError)

	delivery, err := svc.AcceptOrder(testDriver(), order.ID, "")
	assert.NoError(t, err)
	return delivery
}

func TestDeliveryService_ChangeStatus_FullRun(t *testing.T) {
	svc, orderRepo, _, userRepo, restaurantRepo := newTestDeliveryService()
	delivery := acceptForTest(t, svc, orderRepo, userRepo, restaurantRepo)

	// Walk the order alongside so the delivered handoff can close it out.
	_, err := orderRepo.UpdateStatusGuard(delivery.OrderID, models.OrderConfirmed, models.OrderPreparing)
	assert.NoError(t, err)
	_, err = orderRepo.UpdateStatusGuard(delivery.OrderID, models.OrderPreparing, models.OrderOutForDelivery)
	assert.NoError(t, err)

	for _, target := range []models.DeliveryStatus{
		models.DeliveryPicked, models.DeliveryInTransit, models.DeliveryDelivered,
	} {
		updated, err := svc.ChangeStatus(delivery.ID, target, "driver-1")
		assert.NoError(t, err)
		assert.Equal(t, target, updated.Status)
	}

	// Delivery completion also delivers the order.
	order, err := orderRepo.GetByID(delivery.OrderID)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderDelivered, order.Status)
}

func TestDeliveryService_ChangeStatus_NoStageSkipping(t *testing.T) {
	svc, orderRepo, _, userRepo, restaurantRepo := newTestDeliveryService()
	delivery := acceptForTest(t, svc, orderRepo, userRepo, restaurantRepo)

	_, err := svc.ChangeStatus(delivery.ID, models.DeliveryDelivered, "driver-1")
	assert.ErrorIs(t, err, services.ErrInvalidTransition)

	_, err = svc.ChangeStatus(delivery.ID, models.DeliveryInTransit, "driver-1")
	assert.ErrorIs(t, err, services.ErrInvalidTransition)
}

func TestDeliveryService_ChangeStatus_SameStatusIsNoOp(t *testing.T) {
	svc, orderRepo, _, userRepo, restaurantRepo := newTestDeliveryService()
	delivery := acceptForTest(t, svc, orderRepo, userRepo, restaurantRepo)

	updated, err := svc.ChangeStatus(delivery.ID, models.DeliveryUnassigned, "driver-1")
	assert.NoError(t, err)
	assert.Equal(t, models.DeliveryUnassigned, updated.Status)
}

func TestDeliveryService_ChangeStatus_OnlyAssignedDriver(t *testing.T) {
	svc, orderRepo, _, userRepo, restaurantRepo := newTestDeliveryService()
	delivery := acceptForTest(t, svc, orderRepo, userRepo, restaurantRepo)

	_, err := svc.ChangeStatus(delivery.ID, models.DeliveryPicked, "driver-2")
	assert.ErrorIs(t, err, services.ErrNotOwner)
}

func TestDeliveryService_ChangeStatus_UnknownStatus(t *testing.T) {
	svc, orderRepo, _, userRepo, restaurantRepo := newTestDeliveryService()
	delivery := acceptForTest(t, svc, orderRepo, userRepo, restaurantRepo)

	_, err := svc.ChangeStatus(delivery.ID, "on_the_way", "driver-1")
	assert.ErrorIs(t, err, services.ErrUnknownStatus)
}
