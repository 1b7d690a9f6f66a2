package party

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/hustings/core"
)

const feed = "election,party_name,person_id\n" +
	"local.2024,Green Party,C123\n" +
	"\n" +
	",,\n" +
	"local.2024,,C999\n" +
	"local.2024,Labour Party,\n" +
	"local.2024,\"Liberal Democrats, Local\",d456\n"

func TestDirectory_Populate(t *testing.T) {
	d, err := NewDirectory()
	require.NoError(t, err)

	n, err := d.Populate(strings.NewReader(feed))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, d.Len())

	assert.Equal(t, "Green Party", d.Lookup("c123"))
	assert.Equal(t, "Green Party", d.Lookup("C123"))
	assert.Equal(t, "Liberal Democrats, Local", d.Lookup("D456"))
	assert.Equal(t, core.UnknownParty, d.Lookup("C999"))
	assert.Equal(t, core.UnknownParty, d.Lookup(""))
	assert.Equal(t, []string{"Green Party", "Liberal Democrats, Local"}, d.Parties())
}

func TestDirectory_PopulateErrors(t *testing.T) {
	d, err := NewDirectory()
	require.NoError(t, err)

	_, err = d.Populate(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyFeed)

	n, err := d.Populate(strings.NewReader("name,other\nx,y\n"))
	require.NoError(t, err)
	assert.Zero(t, n, "missing columns add nothing")
}

func TestDirectory_PopulateBOMHeader(t *testing.T) {
	d, err := NewDirectory()
	require.NoError(t, err)

	_, err = d.Populate(strings.NewReader("\ufeffperson_id,party_name\n7,Reform UK\n"))
	require.NoError(t, err)
	assert.Equal(t, "Reform UK", d.Lookup("7"))
}

type stringOpener struct {
	body string
	err  error
	gate chan struct{}
}

func (o stringOpener) Open(ctx context.Context, _ string) (io.ReadCloser, error) {
	if o.gate != nil {
		<-o.gate
	}
	if o.err != nil {
		return nil, o.err
	}
	return io.NopCloser(strings.NewReader(o.body)), nil
}

func TestDirectory_LoadAsync(t *testing.T) {
	d, err := NewDirectory()
	require.NoError(t, err)

	gate := make(chan struct{})
	d.LoadAsync(context.Background(), stringOpener{body: feed, gate: gate}, "parties.csv")
	assert.False(t, d.Ready())
	assert.Equal(t, core.UnknownParty, d.Lookup("c123"))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, d.Wait(ctx), context.DeadlineExceeded)

	close(gate)
	require.NoError(t, d.Wait(context.Background()))
	assert.True(t, d.Ready())
	assert.Equal(t, "Green Party", d.Lookup("c123"))
}

func TestDirectory_LoadAsyncFailure(t *testing.T) {
	d, err := NewDirectory()
	require.NoError(t, err)

	feedErr := errors.New("unreachable")
	d.LoadAsync(context.Background(), stringOpener{err: feedErr}, "parties.csv")

	assert.ErrorIs(t, d.Wait(context.Background()), feedErr)
	assert.True(t, d.Ready())
	assert.Equal(t, core.UnknownParty, d.Lookup("c123"))
}

func TestDirectory_LoadAsyncOnce(t *testing.T) {
	d, err := NewDirectory()
	require.NoError(t, err)

	d.LoadAsync(context.Background(), stringOpener{body: feed}, "a.csv")
	d.LoadAsync(context.Background(), stringOpener{err: errors.New("second")}, "b.csv")
	require.NoError(t, d.Wait(context.Background()))
}

func TestDirectory_MarkReady(t *testing.T) {
	d, err := NewDirectory()
	require.NoError(t, err)
	d.MarkReady()
	assert.True(t, d.Ready())
	assert.NoError(t, d.Wait(context.Background()))
}

func TestForEachRow(t *testing.T) {
	var names []string
	err := ForEachRow(strings.NewReader("person_name,person_id\nAnn,1\nBob\n"), func(r Row) error {
		names = append(names, r.Get("person_name")+":"+r.Get("person_id")+":"+r.Get("missing"))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Ann:1:", "Bob::"}, names)

	stop := errors.New("stop")
	err = ForEachRow(strings.NewReader("a\n1\n2\n"), func(Row) error { return stop })
	assert.ErrorIs(t, err, stop)
}
