package rod

// Functions evaluated in the page. Element scripts run with `this` bound to
// the element.
const (
	jsMarkInjected = `() => {
		if (window.__askaiFillerInjected) return true;
		window.__askaiFillerInjected = true;
		return false;
	}`

	jsDocumentReady = `() => document.readyState !== 'loading'`

	jsActiveElement = `() => {
		const el = document.activeElement;
		return el ? [el] : [];
	}`

	jsObserveMutations = `(name) => {
		const key = '__askaiObserver_' + name;
		if (window[key]) window[key].disconnect();
		const observer = new MutationObserver((mutations) => {
			for (const m of mutations) {
				if (m.addedNodes.length > 0) {
					window[name]();
					return;
				}
			}
		});
		observer.observe(document.documentElement || document, { childList: true, subtree: true });
		window[key] = observer;
	}`

	jsDisconnectObserver = `(name) => {
		const key = '__askaiObserver_' + name;
		if (window[key]) {
			window[key].disconnect();
			delete window[key];
		}
	}`

	jsShowNotification = `(id, message, displayMs) => {
		const note = document.createElement('div');
		note.id = id;
		note.textContent = message;
		note.style.cssText = [
			'position: fixed', 'top: 20px', 'left: 50%', 'transform: translateX(-50%)',
			'background: linear-gradient(135deg, #667eea 0%, #764ba2 100%)', 'color: white',
			'padding: 16px 24px', 'border-radius: 8px', 'box-shadow: 0 4px 12px rgba(0, 0, 0, 0.15)',
			'z-index: 999999', 'font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif',
			'font-size: 14px', 'font-weight: 500', 'max-width: 300px',
		].join(';');
		(document.body || document.documentElement).appendChild(note);
		setTimeout(() => {
			note.style.transition = 'opacity 0.3s ease-out';
			note.style.opacity = '0';
			setTimeout(() => note.remove(), 300);
		}, displayMs);
	}`

	jsElementInfo = `function () {
		const style = window.getComputedStyle(this);
		const rect = this.getBoundingClientRect();
		const attributes = {};
		for (const a of this.attributes) attributes[a.name] = a.value;
		return {
			tag: this.tagName.toLowerCase(),
			attributes: attributes,
			display: style.display,
			visibility: style.visibility,
			opacity: style.opacity,
			width: rect.width,
			height: rect.height,
			isBody: this === document.body,
		};
	}`

	jsClosest = `function (selector) {
		const el = this.closest(selector);
		return el ? [el] : [];
	}`

	jsClick = `function () { this.click(); }`

	jsValue = `function () { return this.value === undefined ? '' : String(this.value); }`

	jsSetValue = `function (value) { this.value = value; }`

	jsTypeValue = `function (value) {
		this.value = '';
		for (const ch of value) this.value += ch;
	}`

	jsSetText = `function (text) { this.textContent = text; }`

	jsReplaceContent = `function (text) {
		this.textContent = '';
		this.appendChild(document.createTextNode(text));
	}`

	jsCaretToEnd = `function () {
		const range = document.createRange();
		range.selectNodeContents(this);
		range.collapse(false);
		const sel = window.getSelection();
		sel.removeAllRanges();
		sel.addRange(range);
	}`

	jsDispatch = `function (type, cls, bubbles, cancelable) {
		const Ctor = cls === 'KeyboardEvent' ? KeyboardEvent : Event;
		this.dispatchEvent(new Ctor(type, { bubbles: bubbles, cancelable: cancelable }));
	}`
)
