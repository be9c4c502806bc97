package sources

import (
	"testing"
	"time"

	"quotes-aggregator/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	all := Default(2 * time.Second)
	require.Len(t, all, 5)
	require.NoError(t, Validate(all))

	var names []string
	for _, s := range all {
		names = append(names, s.Name)
	}
	require.Equal(t, []string{DolarHoy, Cronista, Wise, Nomad, Nubank}, names)
	require.Equal(t, 2*time.Second, all[3].Rendered.Settle)
}

func TestFilter(t *testing.T) {
	all := Default(0)

	got, err := Filter(all, nil)
	require.NoError(t, err)
	require.Len(t, got, 5)

	got, err = Filter(all, []string{Nubank, DolarHoy})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, DolarHoy, got[0].Name)
	require.Equal(t, Nubank, got[1].Name)

	_, err = Filter(all, []string{"bloomberg"})
	require.ErrorIs(t, err, domain.ErrInvalidSource)
}

func TestValidate_Duplicate(t *testing.T) {
	all := Default(0)
	err := Validate(append(all, all[0]))
	require.ErrorIs(t, err, domain.ErrInvalidSource)
}
