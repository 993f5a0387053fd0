package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStore_GetFallsBackToDefaults(t *testing.T) {
	store := NewStore(Catalog(), zap.NewNop())

	tests := []struct {
		name string
		opt  Option
		want Value
	}{
		{name: "option default wins over global", opt: CreateTrayIcon, want: Toggle(true)},
		{name: "option default hotkey", opt: ToggleWindowFocusHotkey, want: Accelerator("CmdOrCtrl+Shift+Tab")},
		{name: "global default without option default", opt: QuickNoteLocation, want: Text("Notes")},
		{name: "hidden log level", opt: LogLevel, want: Text(LogLevelError)},
		{name: "date format", opt: QuickNoteDateFormat, want: DatePattern("YYYY-MM-DD")},
		{name: "unknown key falls to zero value", opt: Option{Key: "nope", Kind: KindToggle}, want: Toggle(false)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, store.Get(tt.opt))
		})
	}
}

func TestStore_SetAndGet(t *testing.T) {
	store := NewStore(Catalog(), zap.NewNop())

	store.Set(RunInBackground, Toggle(true))
	store.Set(QuickNoteLocation, Text("Inbox/Daily"))

	assert.True(t, store.Bool(RunInBackground))
	assert.Equal(t, "Inbox/Daily", store.String(QuickNoteLocation))
}

func TestStore_SetRejectsInvalidWrites(t *testing.T) {
	store := NewStore(Catalog(), zap.NewNop())

	store.Set(RunInBackground, Text("yes"))
	store.Set(RunInBackground, nil)
	store.Set(Option{Key: "unknown", Kind: KindText}, Text("x"))

	assert.False(t, store.Bool(RunInBackground))
	_, ok := store.Option("unknown")
	assert.False(t, ok)
}

func TestStore_LoadFrom(t *testing.T) {
	store := NewStore(Catalog(), zap.NewNop())
	store.Set(HideOnLaunch, Toggle(true))

	store.LoadFrom(map[string]any{
		KeyRunInBackground:    true,
		KeyQuickNoteLocation:  "Journal",
		KeyCreateTrayIcon:     "not a bool",
		"somethingFromTheFuture": 42,
	})

	assert.True(t, store.Bool(RunInBackground))
	assert.Equal(t, "Journal", store.String(QuickNoteLocation))
	assert.True(t, store.Bool(CreateTrayIcon), "ill-typed entry keeps its default")
	assert.False(t, store.Bool(HideOnLaunch), "values not in the mapping are reset")
}

func TestStore_LoadFromNil(t *testing.T) {
	store := NewStore(Catalog(), zap.NewNop())
	store.Set(RunInBackground, Toggle(true))

	store.LoadFrom(nil)

	assert.False(t, store.Bool(RunInBackground))
}

func TestStore_ToPersistedMapping(t *testing.T) {
	store := NewStore(Catalog(), zap.NewNop())
	store.Set(LaunchOnStartup, Toggle(true))
	store.Set(QuickNoteHotkey, Accelerator("Alt+N"))

	mapping := store.ToPersistedMapping()

	require.Len(t, mapping, len(Catalog()))
	assert.Equal(t, true, mapping[KeyLaunchOnStartup])
	assert.Equal(t, "Alt+N", mapping[KeyQuickNoteHotkey])
	assert.Equal(t, "Notes", mapping[KeyQuickNoteLocation])
	assert.Equal(t, true, mapping[KeyCreateTrayIcon])

	reloaded := NewStore(Catalog(), zap.NewNop())
	reloaded.LoadFrom(mapping)
	for _, opt := range Catalog() {
		assert.Equal(t, store.Get(opt), reloaded.Get(opt), opt.Key)
	}
}

func TestDefaults_CoverCatalog(t *testing.T) {
	for _, opt := range Catalog() {
		v, ok := Defaults[opt.Key]
		if assert.True(t, ok, "missing global default for %s", opt.Key) {
			assert.Equal(t, opt.Kind, v.Kind(), opt.Key)
		}
		if opt.Default != nil {
			assert.Equal(t, opt.Kind, opt.Default.Kind(), opt.Key)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		kind    Kind
		input   string
		want    Value
		wantErr bool
	}{
		{name: "toggle on", kind: KindToggle, input: "on", want: Toggle(true)},
		{name: "toggle 0", kind: KindToggle, input: "0", want: Toggle(false)},
		{name: "toggle garbage", kind: KindToggle, input: "maybe", wantErr: true},
		{name: "hotkey", kind: KindHotkey, input: "Alt+Q", want: Accelerator("Alt+Q")},
		{name: "moment", kind: KindMoment, input: "YYYY", want: DatePattern("YYYY")},
		{name: "image", kind: KindImage, input: "data:,", want: Image("data:,")},
		{name: "text", kind: KindText, input: "hello", want: Text("hello")},
		{name: "unknown kind", kind: Kind(99), input: "x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.kind, tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecode_TypeMismatch(t *testing.T) {
	_, err := Decode(KindToggle, "true")
	assert.Error(t, err)

	_, err = Decode(KindText, false)
	assert.Error(t, err)
}
