package rod

// Pages served to headless Chrome. Each records the synthetic events it
// receives in window.__events.
const (
	recorderScript = `<script>
	window.__events = [];
	for (const type of ['input', 'change', 'keydown', 'keyup']) {
		document.addEventListener(type, (e) => window.__events.push(type + ':' + e.target.tagName.toLowerCase()), true);
	}
</script>`

	TextareaHTML = `<!DOCTYPE html>
<html>
<head><title>Chat</title>` + recorderScript + `</head>
<body>
	<input id="search" type="search" placeholder="Search docs" />
	<textarea id="prompt" aria-label="Ask anything" rows="3" cols="60"></textarea>
</body>
</html>`

	GuardedValueHTML = `<!DOCTYPE html>
<html>
<head><title>Guarded</title>` + recorderScript + `</head>
<body>
	<textarea id="prompt" rows="3" cols="60"></textarea>
	<script>
		const ta = document.getElementById('prompt');
		const desc = Object.getOwnPropertyDescriptor(HTMLTextAreaElement.prototype, 'value');
		window.__bulkRejected = 0;
		Object.defineProperty(ta, 'value', {
			get() { return desc.get.call(this); },
			set(v) {
				const cur = desc.get.call(this);
				if (v.length - cur.length > 1) { window.__bulkRejected++; return; }
				desc.set.call(this, v);
			},
		});
	</script>
</body>
</html>`

	LateInputHTML = `<!DOCTYPE html>
<html>
<head><title>SPA</title>` + recorderScript + `</head>
<body>
	<div id="app">Loading…</div>
	<script>
		setTimeout(() => {
			const editor = document.createElement('div');
			editor.id = 'editor';
			editor.setAttribute('contenteditable', 'true');
			editor.setAttribute('role', 'textbox');
			editor.style.cssText = 'width: 400px; height: 60px; border: 1px solid #ccc';
			document.getElementById('app').replaceChildren(editor);
		}, 700);
	</script>
</body>
</html>`

	RichTextHTML = `<!DOCTYPE html>
<html>
<head><title>Rich</title>` + recorderScript + `
<style>rich-textarea { display: block; width: 400px; min-height: 40px; }</style>
</head>
<body>
	<rich-textarea aria-label="Enter a prompt here">
		<p id="para" contenteditable="true" tabindex="0">draft</p>
	</rich-textarea>
	<script>document.getElementById('para').focus();</script>
</body>
</html>`

	EmptyHTML = `<!DOCTYPE html>
<html>
<head><title>Nothing</title></head>
<body><h1>No inputs here</h1><input type="checkbox" /></body>
</html>`
)
