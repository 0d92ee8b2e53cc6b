// Hand-written mocks of RuntimeAPI and ExecutionBackend, laid out the way MockGen lays
// out its output and built on the gomock runtime.

package candidatevalidation

import (
	context "context"
	reflect "reflect"

	parachaintypes "github.com/RainFallsSilent/polkadot/dot/parachain/types"
	common "github.com/RainFallsSilent/polkadot/lib/common"
	gomock "go.uber.org/mock/gomock"
)

// MockRuntimeAPI is a mock of RuntimeAPI interface.
type MockRuntimeAPI struct {
	ctrl     *gomock.Controller
	recorder *MockRuntimeAPIMockRecorder
}

// MockRuntimeAPIMockRecorder is the mock recorder for MockRuntimeAPI.
type MockRuntimeAPIMockRecorder struct {
	mock *MockRuntimeAPI
}

// NewMockRuntimeAPI creates a new mock instance.
func NewMockRuntimeAPI(ctrl *gomock.Controller) *MockRuntimeAPI {
	mock := &MockRuntimeAPI{ctrl: ctrl}
	mock.recorder = &MockRuntimeAPIMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockRuntimeAPI) EXPECT() *MockRuntimeAPIMockRecorder {
	return m.recorder
}

// PersistedValidationData mocks base method.
func (m *MockRuntimeAPI) PersistedValidationData(
	ctx context.Context,
	relayParent common.Hash,
	paraID parachaintypes.ParaID,
	assumption parachaintypes.OccupiedCoreAssumption,
) (parachaintypes.PersistedValidationData, bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PersistedValidationData", ctx, relayParent, paraID, assumption)
	ret0, _ := ret[0].(parachaintypes.PersistedValidationData)
	ret1, _ := ret[1].(bool)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// PersistedValidationData indicates an expected call of PersistedValidationData.
func (mr *MockRuntimeAPIMockRecorder) PersistedValidationData(ctx, relayParent, paraID, assumption any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PersistedValidationData",
		reflect.TypeOf((*MockRuntimeAPI)(nil).PersistedValidationData), ctx, relayParent, paraID, assumption)
}

// ValidationCode mocks base method.
func (m *MockRuntimeAPI) ValidationCode(
	ctx context.Context,
	relayParent common.Hash,
	paraID parachaintypes.ParaID,
	assumption parachaintypes.OccupiedCoreAssumption,
) (parachaintypes.ValidationCode, bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ValidationCode", ctx, relayParent, paraID, assumption)
	ret0, _ := ret[0].(parachaintypes.ValidationCode)
	ret1, _ := ret[1].(bool)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// ValidationCode indicates an expected call of ValidationCode.
func (mr *MockRuntimeAPIMockRecorder) ValidationCode(ctx, relayParent, paraID, assumption any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ValidationCode",
		reflect.TypeOf((*MockRuntimeAPI)(nil).ValidationCode), ctx, relayParent, paraID, assumption)
}

// CheckValidationOutputs mocks base method.
func (m *MockRuntimeAPI) CheckValidationOutputs(
	ctx context.Context,
	relayParent common.Hash,
	req CheckValidationOutputsRequest,
) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CheckValidationOutputs", ctx, relayParent, req)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CheckValidationOutputs indicates an expected call of CheckValidationOutputs.
func (mr *MockRuntimeAPIMockRecorder) CheckValidationOutputs(ctx, relayParent, req any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CheckValidationOutputs",
		reflect.TypeOf((*MockRuntimeAPI)(nil).CheckValidationOutputs), ctx, relayParent, req)
}

// MockExecutionBackend is a mock of ExecutionBackend interface.
type MockExecutionBackend struct {
	ctrl     *gomock.Controller
	recorder *MockExecutionBackendMockRecorder
}

// MockExecutionBackendMockRecorder is the mock recorder for MockExecutionBackend.
type MockExecutionBackendMockRecorder struct {
	mock *MockExecutionBackend
}

// NewMockExecutionBackend creates a new mock instance.
func NewMockExecutionBackend(ctrl *gomock.Controller) *MockExecutionBackend {
	mock := &MockExecutionBackend{ctrl: ctrl}
	mock.recorder = &MockExecutionBackendMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockExecutionBackend) EXPECT() *MockExecutionBackendMockRecorder {
	return m.recorder
}

// Execute mocks base method.
func (m *MockExecutionBackend) Execute(
	ctx context.Context,
	code []byte,
	encodedParams []byte,
	priority Priority,
) (WasmResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Execute", ctx, code, encodedParams, priority)
	ret0, _ := ret[0].(WasmResult)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Execute indicates an expected call of Execute.
func (mr *MockExecutionBackendMockRecorder) Execute(ctx, code, encodedParams, priority any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Execute",
		reflect.TypeOf((*MockExecutionBackend)(nil).Execute), ctx, code, encodedParams, priority)
}
