package console

type viewState string

func (v viewState) isListView() bool {
	return v == viewStateList
}

func (v viewState) isMinimapView() bool {
	return v == viewStateMinimap
}

// toggled is the only transition: list and minimap swap.
func (v viewState) toggled() viewState {
	if v.isMinimapView() {
		return viewStateList
	}
	return viewStateMinimap
}

const viewStateList viewState = "list"
const viewStateMinimap viewState = "minimap"
