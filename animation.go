package space

import "time"

// The helpers below schedule common node motions on the node's engine. Each
// one clears earlier tweens of the same fields first, since the helpers are
// used to retarget a motion in flight: the new tween starts from the current,
// not the original, values. They return nil for a disposed node.

// TweenPosition animates node.X and node.Y to the given coordinates.
func TweenPosition(node *Node, toX, toY float64, duration time.Duration, easing Easing, opts ...TweenOption) *Record {
	return tweenNode(node, []string{"x", "y"}, duration, easing, opts,
		Float("x", &node.X, toX), Float("y", &node.Y, toY))
}

// TweenScale animates node.ScaleX and node.ScaleY to the given values.
func TweenScale(node *Node, toSX, toSY float64, duration time.Duration, easing Easing, opts ...TweenOption) *Record {
	return tweenNode(node, []string{"scaleX", "scaleY"}, duration, easing, opts,
		Float("scaleX", &node.ScaleX, toSX), Float("scaleY", &node.ScaleY, toSY))
}

// TweenColor animates all four components of node.Color to the target color.
func TweenColor(node *Node, to Color, duration time.Duration, easing Easing, opts ...TweenOption) *Record {
	return tweenNode(node, []string{"color"}, duration, easing, opts, Tint("color", &node.Color, to))
}

// TweenAlpha animates node.Alpha to the target value.
func TweenAlpha(node *Node, to float64, duration time.Duration, easing Easing, opts ...TweenOption) *Record {
	return tweenNode(node, []string{"alpha"}, duration, easing, opts, Float("alpha", &node.Alpha, to))
}

// TweenRotation animates node.Rotation to the target value in radians.
func TweenRotation(node *Node, to float64, duration time.Duration, easing Easing, opts ...TweenOption) *Record {
	return tweenNode(node, []string{"rotation"}, duration, easing, opts, Float("rotation", &node.Rotation, to))
}

func tweenNode(node *Node, fields []string, duration time.Duration, easing Easing, opts []TweenOption, props ...Prop) *Record {
	if node.disposed {
		return nil
	}
	clearNodeFields(node, fields)
	all := make([]TweenOption, 0, len(opts)+1)
	all = append(all, WithProps(props...))
	all = append(all, opts...)
	r, err := node.Tween(nil, duration, easing, all...)
	if err != nil {
		// Bindings point at the node's own fields, so this only fails on a
		// non-finite destination.
		panic(err)
	}
	return r
}

// clearNodeFields cancels the node's records that drive any of fields, leaving
// records on other fields running.
func clearNodeFields(node *Node, fields []string) {
	if node.engine == nil {
		return
	}
	for _, r := range node.engine.sched.Records(node) {
		for _, p := range r.props {
			if containsName(fields, p.Name()) {
				r.Cancel()
				break
			}
		}
	}
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
