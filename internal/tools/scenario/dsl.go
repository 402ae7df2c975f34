package scenario

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/Shopify/go-lua"
)

const gameTypeName = "stalinopoly.game"

// LoadScenarioFromFile runs a Lua script and returns the Game it builds.
func LoadScenarioFromFile(path string) (*Scenario, error) {
	state := newLuaState()
	if err := lua.LoadFile(state, path, ""); err != nil {
		return nil, fmt.Errorf("load lua: %w", err)
	}
	scenario, err := runScript(state)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(scenario.Name) == "" {
		scenario.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return scenario, nil
}

// LoadScenario runs Lua source held in memory.
func LoadScenario(name, source string) (*Scenario, error) {
	state := newLuaState()
	if err := lua.LoadBuffer(state, source, name, ""); err != nil {
		return nil, fmt.Errorf("load lua: %w", err)
	}
	scenario, err := runScript(state)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(scenario.Name) == "" {
		scenario.Name = name
	}
	return scenario, nil
}

func newLuaState() *lua.State {
	state := lua.NewState()
	lua.OpenLibraries(state)
	registerGameType(state)
	registerGameConstructor(state)
	return state
}

func runScript(state *lua.State) (*Scenario, error) {
	if err := state.ProtectedCall(0, 1, 0); err != nil {
		return nil, fmt.Errorf("run lua: %w", err)
	}
	if state.TypeOf(-1) != lua.TypeUserData {
		state.Pop(1)
		return nil, fmt.Errorf("scenario script must return Game")
	}
	ud := state.ToUserData(-1)
	state.Pop(1)
	scenario, ok := ud.(*Scenario)
	if !ok || scenario == nil {
		return nil, fmt.Errorf("scenario script returned invalid Game")
	}
	return scenario, nil
}

func registerGameType(state *lua.State) {
	lua.NewMetaTable(state, gameTypeName)
	state.NewTable()
	lua.SetFunctions(state, gameMethods, 0)
	state.SetField(-2, "__index")
	state.Pop(1)
}

func registerGameConstructor(state *lua.State) {
	state.NewTable()
	lua.SetFunctions(state, gameConstructor, 0)
	state.SetGlobal("Game")
}

var gameConstructor = []lua.RegistryFunction{
	{Name: "new", Function: gameNew},
}

// gameNew is Game.new(name, {seed = 42, rules = "travel_tax = 100"}).
func gameNew(state *lua.State) int {
	name := lua.OptString(state, 1, "")
	opts := optionalTable(state, 2)
	scenario := &Scenario{Name: name}
	if seed, ok := readInt(opts, "seed"); ok {
		scenario.Seed = int64(seed)
	}
	scenario.Rules = optionalString(opts, "rules", "")
	state.PushUserData(scenario)
	lua.SetMetaTableNamed(state, gameTypeName)
	return 1
}

var gameMethods = []lua.RegistryFunction{
	{Name: "player", Function: gamePlayer},
	{Name: "stalin", Function: gameStalin},
	{Name: "start", Function: gameStart},
	{Name: "dice", Function: gameDice},
	{Name: "roll", Function: gameRoll},
	{Name: "end_turn", Function: gameEndTurn},
	{Name: "stack_directives", Function: gameStackDirectives},
	{Name: "stack_tests", Function: gameStackTests},
	{Name: "op", Function: gameOp},
	{Name: "expect", Function: gameExpect},
}

// gamePlayer is game:player(id, {name = "Anna", piece = "tank"}).
func gamePlayer(state *lua.State) int {
	scenario := checkGame(state)
	id := lua.CheckString(state, 2)
	data := optionalTable(state, 3)
	data["id"] = id
	appendStep(scenario, "player", data)
	state.PushValue(1)
	return 1
}

// gameStalin is game:stalin(id, {name = "Koba"}).
func gameStalin(state *lua.State) int {
	scenario := checkGame(state)
	id := lua.CheckString(state, 2)
	data := optionalTable(state, 3)
	data["id"] = id
	appendStep(scenario, "stalin", data)
	state.PushValue(1)
	return 1
}

func gameStart(state *lua.State) int {
	scenario := checkGame(state)
	appendStep(scenario, "start", nil)
	state.PushValue(1)
	return 1
}

// gameDice queues die faces: game:dice(3, 4).
func gameDice(state *lua.State) int {
	scenario := checkGame(state)
	var faces []any
	for i := 2; i <= state.Top(); i++ {
		faces = append(faces, lua.CheckInteger(state, i))
	}
	appendStep(scenario, "dice", map[string]any{"faces": faces})
	state.PushValue(1)
	return 1
}

// gameRoll rolls, moves and resolves the landing: game:roll("anna") or
// game:roll("anna", {tank = true}).
func gameRoll(state *lua.State) int {
	scenario := checkGame(state)
	player := lua.CheckString(state, 2)
	data := optionalTable(state, 3)
	data["player"] = player
	appendStep(scenario, "roll", data)
	state.PushValue(1)
	return 1
}

func gameEndTurn(state *lua.State) int {
	scenario := checkGame(state)
	appendStep(scenario, "op", map[string]any{"name": "end_turn"})
	state.PushValue(1)
	return 1
}

func gameStackDirectives(state *lua.State) int {
	return stackStep(state, "directives")
}

func gameStackTests(state *lua.State) int {
	return stackStep(state, "tests")
}

func stackStep(state *lua.State, deckName string) int {
	scenario := checkGame(state)
	var ids []any
	for i := 2; i <= state.Top(); i++ {
		ids = append(ids, lua.CheckString(state, i))
	}
	appendStep(scenario, "stack", map[string]any{"deck": deckName, "cards": ids})
	state.PushValue(1)
	return 1
}

// gameOp runs any engine operation: game:op("buy_property", {player = "anna"}).
func gameOp(state *lua.State) int {
	scenario := checkGame(state)
	name := lua.CheckString(state, 2)
	data := optionalTable(state, 3)
	data["name"] = name
	appendStep(scenario, "op", data)
	state.PushValue(1)
	return 1
}

// gameExpect checks state: game:expect({player = "anna", wealth = 1300}).
func gameExpect(state *lua.State) int {
	scenario := checkGame(state)
	lua.CheckType(state, 2, lua.TypeTable)
	appendStep(scenario, "expect", tableToMap(state, 2))
	state.PushValue(1)
	return 1
}

func checkGame(state *lua.State) *Scenario {
	ud := lua.CheckUserData(state, 1, gameTypeName)
	if scenario, ok := ud.(*Scenario); ok && scenario != nil {
		return scenario
	}
	lua.ArgumentError(state, 1, "game expected")
	return nil
}

func appendStep(scenario *Scenario, kind string, data map[string]any) int {
	if scenario == nil {
		return -1
	}
	if data == nil {
		data = map[string]any{}
	}
	scenario.Steps = append(scenario.Steps, Step{Kind: kind, Args: data})
	return len(scenario.Steps) - 1
}

func optionalTable(state *lua.State, index int) map[string]any {
	if state.IsNoneOrNil(index) || state.TypeOf(index) != lua.TypeTable {
		return map[string]any{}
	}
	return tableToMap(state, index)
}

func tableToMap(state *lua.State, index int) map[string]any {
	output := map[string]any{}
	if state.TypeOf(index) != lua.TypeTable {
		return output
	}

	index = state.AbsIndex(index)
	state.PushNil()
	for state.Next(index) {
		if state.TypeOf(-2) == lua.TypeString {
			key, _ := state.ToString(-2)
			output[key] = luaToGo(state, -1)
		}
		state.Pop(1)
	}
	return output
}

func luaToGo(state *lua.State, index int) any {
	switch state.TypeOf(index) {
	case lua.TypeString:
		value, _ := state.ToString(index)
		return value
	case lua.TypeNumber:
		value, _ := state.ToNumber(index)
		return normalizeNumber(value)
	case lua.TypeBoolean:
		return state.ToBoolean(index)
	case lua.TypeTable:
		return tableToGo(state, index)
	default:
		return nil
	}
}

func tableToGo(state *lua.State, index int) any {
	index = state.AbsIndex(index)
	isArray := true
	maxIndex := 0
	count := 0
	state.PushNil()
	for state.Next(index) {
		if isArray {
			if state.TypeOf(-2) != lua.TypeNumber {
				isArray = false
			} else if idx, ok := state.ToInteger(-2); ok && idx > 0 {
				count++
				if idx > maxIndex {
					maxIndex = idx
				}
			} else {
				isArray = false
			}
		}
		state.Pop(1)
	}

	if isArray && count > 0 && maxIndex == count {
		result := make([]any, 0, maxIndex)
		for i := 1; i <= maxIndex; i++ {
			state.RawGetInt(index, i)
			result = append(result, luaToGo(state, -1))
			state.Pop(1)
		}
		return result
	}
	return tableToMap(state, index)
}

func normalizeNumber(value float64) any {
	if math.Mod(value, 1) == 0 {
		return int(value)
	}
	return value
}
