package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/riskibarqy/matchday/internal/platform/logging"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockMigrator struct {
	mock.Mock
}

func (m *mockMigrator) Up() error {
	return m.Called().Error(0)
}

func (m *mockMigrator) Steps(n int) error {
	return m.Called(n).Error(0)
}

func (m *mockMigrator) Migrate(version uint) error {
	return m.Called(version).Error(0)
}

func (m *mockMigrator) Force(version int) error {
	return m.Called(version).Error(0)
}

func (m *mockMigrator) Version() (uint, bool, error) {
	args := m.Called()
	return args.Get(0).(uint), args.Bool(1), args.Error(2)
}

func TestRun_UpIgnoresNoChange(t *testing.T) {
	m := new(mockMigrator)
	m.On("Up").Return(migrate.ErrNoChange).Once()

	require.NoError(t, run(m, []string{"up"}, &bytes.Buffer{}, logging.NewNop()))
	m.AssertExpectations(t)
}

func TestRun_DownDefaultsToOneStep(t *testing.T) {
	m := new(mockMigrator)
	m.On("Steps", -1).Return(nil).Once()
	m.On("Steps", -3).Return(nil).Once()

	require.NoError(t, run(m, []string{"down"}, &bytes.Buffer{}, logging.NewNop()))
	require.NoError(t, run(m, []string{"DOWN", "3"}, &bytes.Buffer{}, logging.NewNop()))
	require.Error(t, run(m, []string{"down", "0"}, &bytes.Buffer{}, logging.NewNop()))
	m.AssertExpectations(t)
}

func TestRun_PropagatesMigrationError(t *testing.T) {
	m := new(mockMigrator)
	m.On("Migrate", uint(2)).Return(errors.New("dirty database")).Once()

	err := run(m, []string{"goto", "2"}, &bytes.Buffer{}, logging.NewNop())
	require.EqualError(t, err, "dirty database")
}

func TestRun_Version(t *testing.T) {
	m := new(mockMigrator)
	m.On("Version").Return(uint(0), false, migrate.ErrNilVersion).Once()
	m.On("Version").Return(uint(2), true, nil).Once()

	var out bytes.Buffer
	require.NoError(t, run(m, []string{"version"}, &out, logging.NewNop()))
	require.Equal(t, "version: none\ndirty: false\n", out.String())

	out.Reset()
	require.NoError(t, run(m, []string{"version"}, &out, logging.NewNop()))
	require.Equal(t, "version: 2\ndirty: true\n", out.String())
}

func TestRun_UsageErrors(t *testing.T) {
	m := new(mockMigrator)
	for _, args := range [][]string{{"sideways"}, {"goto"}, {"force"}} {
		err := run(m, args, &bytes.Buffer{}, logging.NewNop())
		require.ErrorIs(t, err, errUsage, "args %v", args)
	}
}
