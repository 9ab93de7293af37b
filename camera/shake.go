package camera

import (
	"math"

	"github.com/tanema/gween/ease"
	dmath "github.com/yohamta/donburi/features/math"

	"github.com/automoto/doomkit/tween"
)

// Shake starts a decaying screen shake, replacing any shake in progress.
// Intensity is clamped to MaxShakeIntensity. Returns nil when there is
// nothing to do.
func (c *Camera) Shake(intensity, duration float64) *tween.Handle {
	intensity = math.Min(intensity, c.cfg.MaxShakeIntensity)
	if intensity <= 0 || duration <= 0 {
		return nil
	}

	c.shakeHandle.Kill()
	c.shakeAmp = intensity

	h := c.coord.Play(
		tween.Value(intensity, 0, duration, ease.OutQuad, func(v float64) { c.shakeAmp = v }),
		tween.InGroup(c.group),
	)
	stop := func() {
		if c.shakeHandle == h {
			c.shakeAmp = 0
			c.shakeHandle = nil
		}
	}
	h.OnComplete(stop).OnKill(stop)
	c.shakeHandle = h
	return h
}

// ShakeByDistance shakes with an intensity that falls off linearly from
// maxIntensity at the epicenter to zero at maxDistance from the listener.
// Nothing happens at or beyond maxDistance.
func (c *Camera) ShakeByDistance(epicenter, listener dmath.Vec2, maxDistance, maxIntensity, duration float64) *tween.Handle {
	d := math.Hypot(epicenter.X-listener.X, epicenter.Y-listener.Y)
	intensity, ok := FalloffIntensity(d, maxDistance, maxIntensity)
	if !ok {
		return nil
	}
	return c.Shake(intensity, duration)
}

// FalloffIntensity scales maxIntensity down to zero at maxDistance. The
// second result is false when the distance is out of range.
func FalloffIntensity(distance, maxDistance, maxIntensity float64) (float64, bool) {
	if maxDistance <= 0 || distance >= maxDistance {
		return 0, false
	}
	return maxIntensity * (1 - distance/maxDistance), true
}

// StopShake cancels the current shake.
func (c *Camera) StopShake() {
	c.shakeHandle.Kill()
	c.shakeAmp = 0
}

// Shaking reports whether a shake is in progress.
func (c *Camera) Shaking() bool { return c.shakeHandle.Running() }

// ShakeAmplitude is the current shake strength in world units.
func (c *Camera) ShakeAmplitude() float64 { return c.shakeAmp }

// ShakeOffset is the additive perturbation applied on top of the follow
// position.
func (c *Camera) ShakeOffset() (float64, float64) {
	if c.shakeAmp <= 0 {
		return 0, 0
	}
	w := c.shakeTime * c.cfg.ShakeFrequency
	return math.Sin(w*1.1) * c.shakeAmp, math.Cos(w*1.3) * c.shakeAmp
}

// ZoomTo eases the visible half-height toward size, clamped to the
// configured range. Bounds follow every intermediate size.
func (c *Camera) ZoomTo(size, duration float64) *tween.Handle {
	size = clamp(size, c.cfg.MinSize, c.cfg.MaxSize)
	c.zoomHandle.Kill()
	if duration <= 0 {
		c.setSize(size)
		return nil
	}
	c.zoomHandle = c.coord.Play(
		tween.Value(c.size, size, duration, ease.InOutQuad, c.setSize),
		tween.InGroup(c.group),
	)
	return c.zoomHandle
}

// ResetZoom eases back to the configured default size.
func (c *Camera) ResetZoom(duration float64) *tween.Handle {
	return c.ZoomTo(c.cfg.DefaultSize, duration)
}

func (c *Camera) setSize(size float64) {
	c.size = size
	c.recomputeBounds()
	c.clampPosition()
}
