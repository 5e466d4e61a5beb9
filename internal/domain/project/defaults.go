package project

import "time"

const (
	defaultComponentID   = "1"
	defaultComponentName = "App.tsx"
	defaultStyleID       = "2"
	defaultStyleName     = "App.css"
)

const defaultComponentContent = `import React from 'react';
import './App.css';

function App() {
  return (
    <div className="App">
      <header className="App-header">
        <h1>Welcome to CipherStudio!</h1>
        <p>
          Start editing <code>App.tsx</code> to see your changes.
        </p>
        <a
          className="App-link"
          href="https://reactjs.org"
          target="_blank"
          rel="noopener noreferrer"
        >
          Learn React
        </a>
      </header>
    </div>
  );
}

export default App;`

const defaultStyleContent = `.App {
  text-align: center;
}

.App-header {
  background-color: #282c34;
  padding: 20px;
  color: white;
  min-height: 100vh;
  display: flex;
  flex-direction: column;
  align-items: center;
  justify-content: center;
  font-size: calc(10px + 2vmin);
}

.App-link {
  color: #61dafb;
  text-decoration: none;
}

.App-link:hover {
  text-decoration: underline;
}

code {
  background-color: #f1f1f1;
  padding: 2px 4px;
  border-radius: 3px;
  font-family: source-code-pro, Menlo, Monaco, Consolas, 'Courier New', monospace;
}`

// DefaultFiles is the starter content of a project created without files.
func DefaultFiles(now time.Time) []File {
	return []File{
		NewFile(defaultComponentID, defaultComponentName, defaultComponentContent, now),
		NewFile(defaultStyleID, defaultStyleName, defaultStyleContent, now),
	}
}
