package services_test

import (
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/conductor/internal/core/domain"
	"go.trai.ch/conductor/internal/core/ports/mocks"
	"go.trai.ch/conductor/internal/engine/services"
	"go.uber.org/mock/gomock"
)

func TestManager_StartReportsEachServiceWithoutAborting(t *testing.T) {
	ctrl := gomock.NewController(t)
	runtime := mocks.NewMockContainerRuntime(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)

	boom := errors.New("no such container")
	gomock.InOrder(
		runtime.EXPECT().StartContainer(gomock.Any(), "pg-dev").Return(boom),
		runtime.EXPECT().StartContainer(gomock.Any(), "redis").Return(nil),
	)

	m := services.NewManager(runtime, mockLogger)
	list := []domain.Service{{Name: "postgres", Container: "pg-dev"}, {Name: "redis"}}

	var started []string
	var failed []string
	for s, err := range m.Start(t.Context(), list) {
		if err != nil {
			failed = append(failed, s.Name)
			continue
		}
		started = append(started, s.Name)
	}

	assert.Equal(t, []string{"redis"}, started)
	assert.Equal(t, []string{"postgres"}, failed)
}

func TestManager_IsLazy(t *testing.T) {
	ctrl := gomock.NewController(t)
	runtime := mocks.NewMockContainerRuntime(ctrl)
	runtime.EXPECT().StopContainer(gomock.Any(), "a").Return(nil)

	m := services.NewManager(runtime, mocks.NewMockLogger(ctrl))
	seq := m.Stop(t.Context(), []domain.Service{{Name: "a"}, {Name: "b"}})

	for range seq {
		break
	}
}

func TestManager_ForComponent(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).Times(1)

	project := &domain.Project{Services: []domain.Service{{Name: "Postgres"}, {Name: "redis"}}}
	c := domain.Component{Name: "api", Services: []string{"postgres", "missing", "REDIS"}}

	got := services.NewManager(mocks.NewMockContainerRuntime(ctrl), mockLogger).ForComponent(project, c)
	require.Len(t, got, 2)
	assert.Equal(t, "Postgres", got[0].Name)
	assert.Equal(t, "redis", got[1].Name)
}

func TestManager_StopAllStopsEachNameOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	runtime := mocks.NewMockContainerRuntime(ctrl)
	runtime.EXPECT().StopContainer(gomock.Any(), "postgres").Return(nil).Times(1)
	runtime.EXPECT().StopContainer(gomock.Any(), "redis").Return(errors.New("gone")).Times(1)

	m := services.NewManager(runtime, mocks.NewMockLogger(ctrl))

	var stopped, failed []string
	m.StopAll(t.Context(),
		[]domain.Service{{Name: "postgres"}, {Name: "redis"}, {Name: "POSTGRES", Container: "postgres"}},
		func(s domain.Service, err error) {
			if err != nil {
				failed = append(failed, s.Name)
				return
			}
			stopped = append(stopped, s.Name)
		})

	sort.Strings(stopped)
	assert.Equal(t, []string{"postgres"}, stopped)
	assert.Equal(t, []string{"redis"}, failed)
}

func TestUnique(t *testing.T) {
	got := services.Unique([]domain.Service{{Name: "a"}, {Name: "B"}, {Name: "A"}, {Name: "b"}})
	assert.Equal(t, []domain.Service{{Name: "a"}, {Name: "B"}}, got)
}
